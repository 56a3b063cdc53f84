package render

import (
	"fmt"
	"io"
	"regexp"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// HookTitle turns a hook name like PreBuyShares into "Pre Buy Shares"
func HookTitle(hook models.PolicyHook) string {
	words := camelBoundary.ReplaceAllString(hook.String(), "$1 $2")
	return cases.Title(language.English).String(words)
}

// PoliciesRenderer renders mock policy bootstraps
type PoliciesRenderer struct {
	out io.Writer
}

// NewPoliciesRenderer creates a new policies renderer
func NewPoliciesRenderer(out io.Writer) *PoliciesRenderer {
	return &PoliciesRenderer{out: out}
}

// RenderBootstrap lists the registered mocks in hook order and the encoded
// policy manager config when one was built
func (r *PoliciesRenderer) RenderBootstrap(mocks usecase.MockPolicies, managerConfig []byte) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Registered %d mock policies", len(mocks))))
	for _, hook := range models.PolicyHooks {
		policy, ok := mocks[hook]
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "  %-26s %s\n", HookTitle(hook), addressStyle.Sprint(policy.Address.Hex()))
	}
	if len(managerConfig) > 0 {
		fmt.Fprintf(r.out, "\nPolicy manager config:\n%s\n", hexutil.Encode(managerConfig))
	}
	return nil
}
