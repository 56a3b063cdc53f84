package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// DeployRenderer renders deploy pipeline, mocks and finalize results
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderRunDeploy renders every executed pipeline step
func (r *DeployRenderer) RenderRunDeploy(result *usecase.RunDeployResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "🚀 Deploy on %s\n\n", result.Network)

	if len(result.Steps) == 0 {
		fmt.Fprintln(r.out, "No steps matched the selected tags")
		return nil
	}

	for _, step := range result.Steps {
		sectionHeaderStyle.Fprintf(r.out, "%s\n", step.Name)
		for _, d := range step.Deployments {
			r.renderDeployment(d)
		}
		if step.Finalize != nil {
			r.renderFinalize(step.Finalize)
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

// RenderMocks renders the records of a mocks run
func (r *DeployRenderer) RenderMocks(result *usecase.DeployMocksResult) error {
	for _, d := range result.Deployments {
		r.renderDeployment(d)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d mocks, %d newly deployed\n", len(result.Deployments), result.Newly())
	return nil
}

// RenderDeployment renders a single deployed or reused record
func (r *DeployRenderer) RenderDeployment(d *models.Deployment) error {
	r.renderDeployment(d)
	return nil
}

// RenderFinalize renders the outcome of release finalization
func (r *DeployRenderer) RenderFinalize(result *usecase.FinalizeResult) error {
	r.renderFinalize(result)
	return nil
}

func (r *DeployRenderer) renderDeployment(d *models.Deployment) {
	if d.NewlyDeployed {
		fmt.Fprintf(r.out, "  %s %s at %s\n", color.New(color.FgGreen).Sprint("deployed"), d.Name, addressStyle.Sprint(d.Address.Hex()))
		return
	}
	fmt.Fprintf(r.out, "  %s %s at %s\n", color.New(color.Faint).Sprint("reusing "), d.Name, addressStyle.Sprint(d.Address.Hex()))
}

func (r *DeployRenderer) renderFinalize(result *usecase.FinalizeResult) {
	switch {
	case result.Skipped:
		fmt.Fprintf(r.out, "  %s\n", FormatWarning(result.SkipReason))
	case result.Receipt != nil:
		fmt.Fprintf(r.out, "  %s\n", FormatSuccess(fmt.Sprintf("Release status %s -> %s (tx %s)",
			result.PreviousStatus, result.Status, result.Receipt.TransactionHash.Hex())))
	default:
		fmt.Fprintf(r.out, "  Release status already %s\n", color.New(color.FgGreen).Sprint(result.Status))
	}
}
