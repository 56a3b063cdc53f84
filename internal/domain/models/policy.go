package models

import "fmt"

// PolicyHook is an extension point in the fund lifecycle where policies are consulted
type PolicyHook uint8

const (
	PreBuyShares PolicyHook = iota
	PostBuyShares
	PreCallOnIntegration
	PostCallOnIntegration
)

// PolicyHooks lists every hook in declaration order
var PolicyHooks = []PolicyHook{
	PreBuyShares,
	PostBuyShares,
	PreCallOnIntegration,
	PostCallOnIntegration,
}

func (h PolicyHook) String() string {
	switch h {
	case PreBuyShares:
		return "PreBuyShares"
	case PostBuyShares:
		return "PostBuyShares"
	case PreCallOnIntegration:
		return "PreCallOnIntegration"
	case PostCallOnIntegration:
		return "PostCallOnIntegration"
	default:
		return fmt.Sprintf("PolicyHook(%d)", uint8(h))
	}
}

// MockIdentifier is the identifier stubbed on the mock policy for this hook
func (h PolicyHook) MockIdentifier() string {
	switch h {
	case PreBuyShares:
		return "MOCK_PRE_BUY_SHARES"
	case PostBuyShares:
		return "MOCK_POST_BUY_SHARES"
	case PreCallOnIntegration:
		return "MOCK_PRE_CALL_ON_INTEGRATION"
	case PostCallOnIntegration:
		return "MOCK_POST_CALL_ON_INTEGRATION"
	default:
		return fmt.Sprintf("MOCK_HOOK_%d", uint8(h))
	}
}
