package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	flag "github.com/spf13/pflag"

	sysemu "github.com/lunixbochs/sysemu/go"
	"github.com/lunixbochs/sysemu/go/arch"
	"github.com/lunixbochs/sysemu/go/log"
	"github.com/lunixbochs/sysemu/go/models"
)

const configFile = "config.json"

// SysemuCmd is the shared flag handling and process setup behind every subcommand.
type SysemuCmd struct {
	Config *models.Config
	Flags  *flag.FlagSet
	Proc   *sysemu.Process

	Usage string
	// called after flags are parsed and the process is built
	RunProcess func(args []string) error

	Stdout io.Writer
	Stderr io.Writer
}

func NewSysemuCmd(usage string) *SysemuCmd {
	return &SysemuCmd{
		Flags:  flag.NewFlagSet("sysemu", flag.ExitOnError),
		Usage:  usage,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// LoadConfig overlays the first config.json found in the user's config folders onto c.
func LoadConfig(c *models.Config) error {
	dirs := configdir.New("sysemu", "")
	folder := dirs.QueryFolderContainsFile(configFile)
	if folder == nil {
		return nil
	}
	data, err := folder.ReadFile(configFile)
	if err != nil {
		return errors.Wrapf(err, "reading %s", configFile)
	}
	return c.LoadJSON(data)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (c *SysemuCmd) PrintError(err error) {
	fmt.Fprintf(c.Stderr, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(c.Stderr, "Error: %s\n", err)
	if c.Config == nil || !c.Config.Verbose {
		return
	}
	if err, ok := errors.Cause(err).(stackTracer); ok {
		for _, f := range err.StackTrace() {
			fmt.Fprintf(c.Stderr, "  %s:%d %n()\n", f, f, f)
		}
	}
}

// Parse fills c.Config from defaults, the config file and argv, in that order.
func (c *SysemuCmd) Parse(argv []string) ([]string, error) {
	config := models.DefaultConfig()
	if err := LoadConfig(config); err != nil {
		return nil, err
	}
	fs := c.Flags
	archName := fs.String("arch", config.Arch, fmt.Sprintf("guest arch (%s)", strings.Join(arch.Names(), ", ")))
	osName := fs.String("os", config.OS, "guest OS")
	strace := fs.BoolP("strace", "s", config.TraceSys, "trace syscalls")
	rtrace := fs.BoolP("rtrace", "r", config.TraceReg, "print changed registers after each syscall")
	verbose := fs.BoolP("verbose", "v", config.Verbose, "verbose output")
	color := fs.Bool("color", config.Color, "color output")
	strsize := fs.Int("strsize", config.Strsize, "limit traced strings to this length (0 disables)")
	maxSteps := fs.Int("max-steps", config.MaxSteps, "stop after this many scheduler steps (0 disables)")
	fs.Usage = func() {
		fmt.Fprintf(c.Stderr, "Usage: %s [options] %s\n\nOptions:\n", argv[0], c.Usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv[1:]); err != nil {
		return nil, err
	}
	config.Arch = *archName
	config.OS = *osName
	config.TraceSys = *strace
	config.TraceReg = *rtrace
	config.Verbose = *verbose
	config.Color = *color
	config.Strsize = *strsize
	config.MaxSteps = *maxSteps
	c.Config = config
	return fs.Args(), nil
}

func (c *SysemuCmd) NewProcess() (*sysemu.Process, error) {
	a, o, err := arch.GetArch(c.Config.Arch, c.Config.OS)
	if err != nil {
		return nil, err
	}
	if c.Config.TraceSys {
		log.EnableTrace()
	}
	return sysemu.NewProcess(a, o, c.Config, nil)
}

func (c *SysemuCmd) Run(argv []string) {
	args, err := c.Parse(argv)
	if err != nil {
		c.PrintError(err)
		os.Exit(2)
	}
	c.Proc, err = c.NewProcess()
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	if err := c.RunProcess(args); err != nil {
		if e, ok := err.(models.ExitStatus); ok {
			os.Exit(int(e))
		}
		c.PrintError(err)
		os.Exit(1)
	}
}
