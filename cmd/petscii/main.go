package main

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/forbidden-bands/petscii"
	"github.com/forbidden-bands/petscii/charmap"
	"github.com/forbidden-bands/petscii/config"
)

type cliArgs struct {
	Charmap string `short:"c" type:"path" help:"Table document to use instead of the embedded one (.json, .yaml, .zst)."`
	Verbose bool   `short:"v" help:"Log table loading at debug level."`

	Decode      cliDecodeCmd      `cmd:"" help:"Decode raw PETSCII bytes to text."`
	Encode      cliEncodeCmd      `cmd:"" help:"Encode text to raw PETSCII bytes."`
	Dump        cliDumpCmd        `cmd:"" help:"Hexdump PETSCII bytes with a decoded gutter."`
	Table       cliTableCmd       `cmd:"" help:"Show the loaded mapping tables."`
	Interactive cliInteractiveCmd `cmd:"" aliases:"i" help:"Convert interactively in a terminal UI."`
	Version     cliVersionCmd     `cmd:"" help:"Show the character map version."`
}

type cliDecodeCmd struct {
	File         string `arg:"" optional:"" type:"existingfile" help:"File of PETSCII bytes (stdin when omitted)."`
	StripPadding bool   `short:"p" help:"Drop shifted-space padding bytes."`
}

type cliEncodeCmd struct {
	Text     string `arg:"" optional:"" help:"Text to encode (stdin when omitted)."`
	Capacity int    `short:"n" default:"0" help:"Buffer capacity; 0 sizes it to the output."`
	Hex      bool   `short:"x" help:"Print bytes as hex instead of raw."`
}

type cliDumpCmd struct {
	File    string `arg:"" optional:"" type:"existingfile" help:"File of PETSCII bytes (stdin when omitted)."`
	Columns int    `default:"16" help:"Bytes per row."`
}

type cliTableCmd struct {
	Set int `short:"s" default:"0" help:"Show a single screen set (0 shows all)."`
}

type cliInteractiveCmd struct{}

type cliVersionCmd struct{}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var args cliArgs
	parser, err := kong.New(
		&args,
		kong.Name("petscii"),
		kong.Description("Commodore PETSCII to Unicode conversion tools."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:   true,
			FlagsLast: true,
		}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	parsed, err := parser.Parse(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if args.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fail(err)
		}
		defer func() { _ = logger.Sync() }()
		config.SetLogger(logger)
	}

	tables, err := loadTables(args.Charmap)
	if err != nil {
		return fail(err)
	}

	switch parsed.Command() {
	case "decode", "decode <file>":
		return cmdDecode(tables, args.Decode)
	case "encode", "encode <text>":
		return cmdEncode(tables, args.Encode)
	case "dump", "dump <file>":
		return cmdDump(tables, args.Dump)
	case "table":
		return cmdTable(tables, args.Table)
	case "interactive":
		return cmdInteractive(tables)
	case "version":
		fmt.Println(tables.Version)
		return 0
	default:
		return 2
	}
}

// loadTables resolves the character map for this invocation: the file
// named by --charmap, or the process-wide default. A map loaded from a
// file is installed so the rest of the process sees the same tables.
func loadTables(path string) (*charmap.Map, error) {
	if path == "" {
		return config.Default()
	}
	m, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	config.Install(m)
	return m, nil
}

func readInput(file string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "reading from stdin until EOF")
	}
	return io.ReadAll(os.Stdin)
}

func cmdDecode(tables *charmap.Map, args cliDecodeCmd) int {
	data, err := readInput(args.File)
	if err != nil {
		return fail(err)
	}

	build := petscii.New
	if args.StripPadding {
		build = petscii.NewStripPadding
	}
	s, err := build(len(data), data)
	if err != nil {
		return fail(err)
	}

	text, err := petscii.Decode(s, tables)
	if err != nil {
		return fail(err)
	}
	fmt.Println(text)
	return 0
}

func cmdEncode(tables *charmap.Map, args cliEncodeCmd) int {
	text := args.Text
	if text == "" {
		data, err := readInput("")
		if err != nil {
			return fail(err)
		}
		text = string(data)
	}

	capacity := args.Capacity
	if capacity <= 0 {
		// Worst case is a shift transition before every rune plus the
		// trailing shift-out.
		capacity = 2*utf8.RuneCountInString(text) + 1
	}

	s, err := petscii.Encode(text, tables, capacity)
	if err != nil {
		return fail(err)
	}

	if args.Hex {
		fmt.Printf("% 02X\n", s.Bytes())
		return 0
	}
	if _, err := os.Stdout.Write(s.Bytes()); err != nil {
		return fail(err)
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
