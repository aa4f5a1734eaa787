package table

import (
	"fmt"

	"github.com/lunixbochs/sysemu/go/cmd"
	"github.com/lunixbochs/sysemu/go/kernel/common"
)

func executorKind(desc *common.SyscallDesc) string {
	if _, ok := desc.Executor.(*common.Syscall); ok {
		return "kernel"
	}
	return "stub"
}

func Main(args []string) {
	c := cmd.NewSysemuCmd("")
	c.RunProcess = func(args []string) error {
		tab := c.Proc.Table
		for _, num := range tab.Nums() {
			desc := tab.Lookup(num)
			if c.Config.Verbose || executorKind(desc) == "kernel" {
				fmt.Fprintf(c.Stdout, "%4d %-20s %-6s %s\n", num, desc.Name, executorKind(desc), desc.Flags)
			}
		}
		return nil
	}
	c.Run(args)
}

func init() { cmd.Register("table", "list the syscalls served for an arch (-v includes stubs)", Main) }
