package arch

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/arch/arm"
	"github.com/lunixbochs/sysemu/go/arch/arm64"
	"github.com/lunixbochs/sysemu/go/arch/x86"
	"github.com/lunixbochs/sysemu/go/arch/x86_64"
	"github.com/lunixbochs/sysemu/go/models"
)

var archMap = map[string]*models.Arch{
	"arm":    arm.Arch,
	"arm64":  arm64.Arch,
	"x86":    x86.Arch,
	"x86_64": x86_64.Arch,
}

func GetArch(name, os string) (*models.Arch, *models.OS, error) {
	a, ok := archMap[name]
	if !ok {
		return nil, nil, errors.Errorf("Arch '%s' not found.", name)
	}
	o, ok := a.OS[os]
	if !ok {
		return nil, nil, errors.Errorf("OS '%s' not found for arch '%s'.", os, name)
	}
	return a, o, nil
}

func Names() []string {
	names := make([]string, 0, len(archMap))
	for name := range archMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
