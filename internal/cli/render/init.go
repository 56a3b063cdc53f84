package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundops/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		if step.Success {
			msg := step.Name
			if step.Message != "" {
				msg = step.Message
			}
			color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", msg)
			continue
		}
		color.New(color.FgRed).Fprintf(r.out, "❌ %s\n", step.Name)
		if step.Message != "" {
			fmt.Fprintf(r.out, "   %s\n", step.Message)
		}
		if step.Error != nil {
			fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
		}
	}

	fmt.Fprintln(r.out)
	if !result.Created() {
		color.New(color.FgYellow).Fprintln(r.out, "⚠️  fundops was already initialized in this project")
		return nil
	}
	color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 fundops initialized successfully!")
	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📋 Next steps:")
	fmt.Fprintln(r.out, "1. Copy .env.example to .env and set DEPLOYER_PRIVATE_KEY and the RPC URLs")
	fmt.Fprintln(r.out, "2. Add networks and contract steps to fundops.toml")
	fmt.Fprintln(r.out, "3. Start a local node and deploy:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   fundops node start")
	color.New(color.FgHiBlack).Fprintln(r.out, "   fundops deploy --network local")
	return nil
}
