package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// Color styles for table format
var (
	networkBg          = color.BgCyan
	networkHeader      = color.New(networkBg, color.FgBlack)
	networkHeaderBold  = color.New(networkBg, color.FgBlack, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	contractStyle      = color.New(color.FgYellow)
	linkedStyle        = color.New(color.FgMagenta)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

// DeploymentsRenderer renders deployment lists as formatted tables
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders the records of one network grouped into
// contracts, mocks and linked data
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network)
		return nil
	}

	label := fmt.Sprintf("%-12s", "network:")
	value := fmt.Sprintf("%-30s", result.Network)
	fmt.Fprintln(r.out, networkHeader.Sprintf(" ⛓ %s ", label)+networkHeaderBold.Sprint(value))
	fmt.Fprintln(r.out)

	var contracts, mocks, linked []*models.Deployment
	for _, d := range result.Deployments {
		switch {
		case d.IsLinkedData():
			linked = append(linked, d)
		case d.IsMock():
			mocks = append(mocks, d)
		default:
			contracts = append(contracts, d)
		}
	}

	r.renderSection("CONTRACTS", contracts)
	r.renderSection("MOCKS", mocks)

	if len(linked) > 0 {
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("LINKED DATA"))
		for _, d := range linked {
			fmt.Fprintf(r.out, "  %s %s\n", linkedStyle.Sprint(d.Name), timestampStyle.Sprintf("(%d bytes)", len(d.LinkedData)))
		}
		fmt.Fprintln(r.out)
	}

	r.renderSummary(result.Summary)
	return nil
}

func (r *DeploymentsRenderer) renderSection(title string, deployments []*models.Deployment) {
	if len(deployments) == 0 {
		return
	}
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint(title))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, d := range deployments {
		created := ""
		if !d.CreatedAt.IsZero() {
			created = timestampStyle.Sprint(d.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		t.AppendRow(table.Row{
			color.New(color.FgGreen, color.Bold).Sprint(d.Name),
			contractStyle.Sprint(d.Contract),
			addressStyle.Sprint(d.Address.Hex()),
			created,
		})
	}

	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
}

func (r *DeploymentsRenderer) renderSummary(summary usecase.DeploymentSummary) {
	fmt.Fprintf(r.out, "Total: %d (mocks: %d, linked data: %d)\n", summary.Total, summary.Mocks, summary.LinkedData)

	if len(summary.ByContract) == 0 {
		return
	}
	contracts := make([]string, 0, len(summary.ByContract))
	for contract := range summary.ByContract {
		contracts = append(contracts, contract)
	}
	sort.Strings(contracts)

	parts := make([]string, 0, len(contracts))
	for _, contract := range contracts {
		parts = append(parts, fmt.Sprintf("%s: %d", contract, summary.ByContract[contract]))
	}
	fmt.Fprintf(r.out, "By contract: %s\n", strings.Join(parts, ", "))
}

// RenderDeployment renders detailed information about a single record
func (r *DeploymentsRenderer) RenderDeployment(network string, d *models.Deployment) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.Name)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintf(r.out, "  Network: %s\n", network)
	if d.IsLinkedData() {
		fmt.Fprintf(r.out, "  Linked data: %s\n", linkedStyle.Sprint(string(d.LinkedData)))
		return nil
	}

	fmt.Fprintf(r.out, "  Contract: %s\n", contractStyle.Sprint(d.Contract))
	fmt.Fprintf(r.out, "  Address: %s\n", d.Address.Hex())
	if d.Deployer != "" {
		fmt.Fprintf(r.out, "  Deployer: %s\n", d.Deployer)
	}
	if d.TransactionHash != "" {
		fmt.Fprintf(r.out, "  Transaction: %s\n", d.TransactionHash)
	}
	if d.Args != "" {
		fmt.Fprintf(r.out, "  Constructor args: %s\n", d.Args)
	}
	if !d.CreatedAt.IsZero() {
		fmt.Fprintf(r.out, "  Created: %s\n", timestampStyle.Sprint(d.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	}
	if len(d.LinkedData) > 0 {
		fmt.Fprintf(r.out, "  Linked data: %s\n", linkedStyle.Sprint(string(d.LinkedData)))
	}
	return nil
}

// DeploymentsByName keys records by registry name for JSON output, since the
// name is the record's file path and not part of its body
func DeploymentsByName(deployments []*models.Deployment) map[string]*models.Deployment {
	byName := make(map[string]*models.Deployment, len(deployments))
	for _, d := range deployments {
		byName[d.Name] = d
	}
	return byName
}
