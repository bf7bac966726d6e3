package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	prev := Version
	Version = "v1.2.3"
	defer func() { Version = prev }()

	if got := Get(); got.Version != "v1.2.3" || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", Template())
	}
}
