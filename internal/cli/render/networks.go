package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundops/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks with their chain IDs
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in fundops.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := "  "
		if network.Active {
			marker = color.New(color.FgGreen).Sprint("▸ ")
		}
		if network.Error != nil {
			fmt.Fprintf(r.out, "%s❌ %s - Error: %v\n", marker, network.Name, network.Error)
			continue
		}
		fmt.Fprintf(r.out, "%s✅ %s - Chain ID: %d", marker, network.Name, network.ChainID)
		if network.Finalize {
			fmt.Fprint(r.out, color.New(color.FgCyan).Sprint(" [finalize]"))
		}
		fmt.Fprintln(r.out)
	}

	return nil
}
