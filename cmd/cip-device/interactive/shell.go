// Package interactive provides the interactive command-line interface
// for the CIP device.
package interactive

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cip-stack/cip-go/pkg/inspect"
	"github.com/cip-stack/cip-go/pkg/interaction"
	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/persistence"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// Config wires the shell to a running stack.
type Config struct {
	// Registry is inspected directly and resolves attribute types.
	Registry *model.Registry

	// Client sends explicit requests for get and set.
	Client *interaction.Client

	// Server receives raw requests.
	Server interaction.Transport

	// Recorder backs the save command. Nil disables it.
	Recorder *persistence.Recorder
}

// Shell handles interactive mode for cip-device.
type Shell struct {
	cfg       Config
	inspector *inspect.Inspector
	remote    *inspect.RemoteInspector
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("classes"),
	readline.PcItem("inspect"),
	readline.PcItem("get"),
	readline.PcItem("getall"),
	readline.PcItem("set"),
	readline.PcItem("raw"),
	readline.PcItem("save"),
	readline.PcItem("quit"),
)

// New creates the shell and its terminal. Call Attach before Run.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cip> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(out io.Writer) *Shell {
	return &Shell{
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// Attach connects the shell to a stack.
func (s *Shell) Attach(cfg Config) {
	s.cfg = cfg
	s.inspector = inspect.NewInspector(cfg.Registry)
	s.remote = inspect.NewRemoteInspector(cfg.Client)
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Execute(ctx, line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "classes", "c":
		s.cmdClasses()

	case "inspect", "i":
		s.cmdInspect(args)

	case "get", "g":
		s.cmdGet(ctx, args)

	case "getall", "ga":
		s.cmdGetAll(ctx, args)

	case "set", "s":
		s.cmdSet(ctx, input, args)

	case "raw":
		s.cmdRaw(ctx, args)

	case "save":
		s.cmdSave()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
CIP Device Commands:
  Inspection:
    classes              - List registered classes
    inspect [path]       - Show classes, a class, an instance or one attribute

  Explicit messaging:
    get <path> [type]    - Get_Attribute_Single
    getall <class/inst>  - Get_Attributes_All (hex dump)
    set <path> <value>   - Set_Attribute_Single
    raw <hex...>         - Send an encoded request, e.g. raw 0e 03 20 01 24 01 30 07

  General:
    save                 - Write settable values to the state file
    help                 - Show this help
    quit                 - Exit device

  Path Format:
    class/instance/attribute - e.g., identity/1/product_name or 0x01/1/7`)
}

func (s *Shell) parsePath(arg string) (*inspect.Path, bool) {
	path, err := inspect.ParsePathIn(s.cfg.Registry, arg)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid path: %v\n", err)
		return nil, false
	}
	return path, true
}

func (s *Shell) printError(err error) {
	var se *wire.StatusError
	if errors.As(err, &se) {
		fmt.Fprintf(s.out, "Error: %s", se.Status)
		if len(se.Extended) > 0 {
			fmt.Fprintf(s.out, " (additional status %04x)", se.Extended)
		}
		fmt.Fprintln(s.out)
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// cmdClasses lists the registered classes.
func (s *Shell) cmdClasses() {
	classes := s.cfg.Registry.Classes()
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID() < classes[j].ID() })
	for _, c := range classes {
		fmt.Fprintf(s.out, "  0x%02X %-20s rev %d, %d instance(s)\n",
			c.ID(), c.Name(), c.Revision(), c.InstanceCount())
	}
}

// cmdInspect handles the inspect command.
func (s *Shell) cmdInspect(args []string) {
	if len(args) == 0 {
		fmt.Fprint(s.out, s.inspector.FormatRegistry(s.formatter))
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}

	if !path.IsPartial {
		attr, err := s.inspector.ReadAttribute(path)
		if err != nil {
			s.printError(err)
			return
		}
		fmt.Fprintln(s.out, s.formatter.FormatAttribute(path.ClassID, path.InstanceNumber, attr))
		return
	}

	info, err := s.inspector.InspectClass(path.ClassID)
	if err != nil {
		s.printError(err)
		return
	}
	if path.HasInstance {
		out, err := s.inspector.FormatInstance(info, path.InstanceNumber, s.formatter)
		if err != nil {
			s.printError(err)
			return
		}
		fmt.Fprint(s.out, out)
		return
	}
	fmt.Fprint(s.out, s.inspector.FormatClass(info, s.formatter))
}

// attributeType resolves the type of the attribute at path, from the
// explicit argument when given.
func (s *Shell) attributeType(path *inspect.Path, explicit string) (wire.DataType, error) {
	if explicit != "" {
		return wire.ParseDataType(explicit)
	}
	attr, err := s.inspector.ReadAttribute(path)
	if err != nil {
		return 0, err
	}
	return attr.Type, nil
}

// cmdGet handles the get command.
func (s *Shell) cmdGet(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: get <path> [type]")
		fmt.Fprintln(s.out, "  Example: get identity/1/product_name")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}
	if path.IsPartial {
		s.cmdGetAll(ctx, args[:1])
		return
	}

	data, err := s.remote.ReadAttribute(ctx, path)
	if err != nil {
		s.printError(err)
		return
	}

	var typeName string
	if len(args) > 1 {
		typeName = args[1]
	}
	t, err := s.attributeType(path, typeName)
	if err != nil || !t.Decodable() {
		fmt.Fprintf(s.out, "%s = [%s]\n", path, formatHex(data))
		return
	}
	value, err := inspect.DecodeValue(t, data)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", path, value)
}

// cmdGetAll handles the getall command.
func (s *Shell) cmdGetAll(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: getall <class/instance>")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}

	data, err := s.remote.ReadAllAttributes(ctx, path)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "%s: %d bytes\n", path, len(data))
	fmt.Fprint(s.out, inspect.HexDump(data))
}

// cmdSet handles the set command. The value is the rest of the line so
// strings may contain spaces.
func (s *Shell) cmdSet(ctx context.Context, input string, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <path> <value>")
		fmt.Fprintln(s.out, "  Example: set 0x64/1/1 -25")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}
	t, err := s.attributeType(path, "")
	if err != nil {
		s.printError(err)
		return
	}

	value := strings.TrimSpace(input[strings.Index(input, args[0])+len(args[0]):])
	if err := s.remote.WriteValue(ctx, path, t, value); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "%s set\n", path)
}

// cmdRaw sends a hex encoded request and decodes the reply.
func (s *Shell) cmdRaw(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: raw <hex...>")
		return
	}

	req, err := hex.DecodeString(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(s.out, "Invalid hex: %v\n", err)
		return
	}

	reply, err := s.cfg.Server.RoundTrip(ctx, req)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprint(s.out, inspect.HexDump(reply))

	resp, err := wire.DecodeResponse(reply)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "%s: %s, %d data bytes\n", resp.Service, resp.GeneralStatus, len(resp.Data))
}

// cmdSave writes the current settable values.
func (s *Shell) cmdSave() {
	if s.cfg.Recorder == nil {
		fmt.Fprintln(s.out, "No state file configured (use -state)")
		return
	}
	if err := s.cfg.Recorder.Save(); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, "State saved")
}

func formatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
