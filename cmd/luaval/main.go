package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	luaserde "github.com/zrkn/rlua-serde"
	"github.com/zrkn/rlua-serde/lua"
)

func main() {
	app := cli.NewApp()
	app.Name = "luaval"
	app.Usage = "convert JSON or YAML documents to Lua value literals"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "input, i",
			Usage: "input file (defaults to stdin)",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "json",
			Usage: "input format: json or yaml",
		},
		cli.IntFlag{
			Name:  "max-tables",
			Usage: "cap the number of tables the runtime may allocate",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "luaval:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := zap.NewNop()
	if c.Bool("verbose") {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = dev
	}
	defer logger.Sync()

	data, err := readInput(c.String("input"))
	if err != nil {
		return err
	}

	var doc any
	format := strings.ToLower(c.String("format"))
	switch format {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return fmt.Errorf("unknown input format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("parse %s input: %w", format, err)
	}
	logger.Debug("parsed document",
		zap.String("format", format),
		zap.Int("bytes", len(data)))

	rt := lua.NewRuntime()
	if max := c.Int("max-tables"); max > 0 {
		rt = lua.NewRuntimeWithLimits(lua.Limits{MaxTables: max})
	}

	value, err := luaserde.ToValue(rt, doc)
	if err != nil {
		return err
	}
	logger.Debug("encoded value", zap.Stringer("type", value.Type()))

	literal, err := lua.Literal(value)
	if err != nil {
		return err
	}
	fmt.Println(literal)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
