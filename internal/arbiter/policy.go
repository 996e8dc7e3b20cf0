package arbiter

import (
	"fmt"
	"os"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/signalyard/internal/command"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
)

// policyFunc is the global the policy script must define.
const policyFunc = "allow"

// Policy is a Lua hook consulted before every network command is
// dispatched. The script defines:
//
//	function allow(command, tile, client, summary)
//	  return true              -- allow
//	  return false             -- reject with the default code
//	  return false, code       -- reject with a specific result code
//	end
//
// A Lua state is single-threaded; calls are serialized on a mutex.
type Policy struct {
	mu    sync.Mutex
	state *lua.State
}

// LoadPolicy compiles a policy script from source.
func LoadPolicy(script string) (*Policy, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	if err := lua.DoString(l, script); err != nil {
		return nil, fmt.Errorf("load policy script: %w", err)
	}
	l.Global(policyFunc)
	defined := l.IsFunction(-1)
	l.Pop(1)
	if !defined {
		return nil, fmt.Errorf("policy script does not define %q", policyFunc)
	}
	return &Policy{state: l}, nil
}

// LoadPolicyFile compiles a policy script from disk.
func LoadPolicyFile(path string) (*Policy, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy script: %w", err)
	}
	return LoadPolicy(string(script))
}

// Allow consults the script for one command. A script error counts as a
// rejection; a broken policy must fail closed.
func (p *Policy) Allow(id command.ID, tile command.TileIndex, client command.ClientID, summary string) (bool, apperrors.Code) {
	if p == nil {
		return true, apperrors.CodeNone
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	l := p.state
	l.Global(policyFunc)
	l.PushString(id.String())
	l.PushInteger(int(tile))
	l.PushInteger(int(client))
	l.PushString(summary)
	if err := l.ProtectedCall(4, 2, 0); err != nil {
		l.SetTop(0)
		return false, apperrors.CodePolicyRejected
	}

	allowed := l.ToBoolean(-2)
	code := apperrors.CodePolicyRejected
	if n, ok := l.ToInteger(-1); ok && n > 0 && n <= 0xFFFF {
		code = apperrors.Code(n)
	}
	l.Pop(2)
	if allowed {
		return true, apperrors.CodeNone
	}
	return false, code
}
