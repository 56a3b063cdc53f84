package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// GovernanceRenderer renders governance actions and version listings
type GovernanceRenderer struct {
	out io.Writer
}

// NewGovernanceRenderer creates a new governance renderer
func NewGovernanceRenderer(out io.Writer) *GovernanceRenderer {
	return &GovernanceRenderer{out: out}
}

// RenderAction renders a triggered governance action
func (r *GovernanceRenderer) RenderAction(action string, id *big.Int) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s triggered as action #%s", action, id)))
	return nil
}

// RenderVersions renders the registered versions
func (r *GovernanceRenderer) RenderVersions(governance string, versions []*models.VersionInfo) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "🏛  Governance %s\n\n", governance)
	if len(versions) == 0 {
		fmt.Fprintln(r.out, "No versions registered")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Version", "Active", "Activated"})
	for _, v := range versions {
		active := color.New(color.FgRed).Sprint("no")
		if v.Active {
			active = color.New(color.FgGreen).Sprint("yes")
		}
		activated := "-"
		if v.ActivationTime != nil && v.ActivationTime.Sign() > 0 {
			activated = v.ActivationTime.String()
		}
		t.AppendRow(table.Row{v.ID, v.Address.Hex(), active, activated})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
