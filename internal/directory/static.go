package directory

import (
	"context"
	"strings"

	"github.com/offering-catalog/catalog-api/internal/config"
)

// StaticOracle answers from a fixed membership table.
type StaticOracle struct {
	allowAll bool
	members  map[string]map[string]struct{}
}

// NewStaticOracle builds the membership table of cfg. Emails compare case insensitively.
func NewStaticOracle(cfg config.DirectoryStatic) *StaticOracle {
	o := &StaticOracle{
		allowAll: cfg.AllowAll,
		members:  make(map[string]map[string]struct{}, len(cfg.Members)),
	}

	for _, m := range cfg.Members {
		set, ok := o.members[m.Group]
		if !ok {
			set = make(map[string]struct{}, len(m.Emails))
			o.members[m.Group] = set
		}

		for _, e := range m.Emails {
			set[strings.ToLower(e)] = struct{}{}
		}
	}

	return o
}

// IsMember implements Oracle.
func (o *StaticOracle) IsMember(_ context.Context, email, group string) bool {
	if email == "" || group == "" {
		return false
	}

	if o.allowAll {
		observe(KindStatic, true)
		return true
	}

	_, in := o.members[group][strings.ToLower(email)]
	observe(KindStatic, in)

	return in
}
