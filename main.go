package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"pixmap/convert"
	"pixmap/parallel"
	"pixmap/render"
	"pixmap/transform"
)

type CLI struct {
	Workers int  `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
	Verbose bool `help:"Enable debug logging" short:"v"`

	Render    render.CLICmd    `cmd:"" default:"withargs" help:"Draw the demo scene into pixel-map files"`
	Transform transform.CLICmd `cmd:"" help:"Remap a pixel-map image through linear transforms"`
	Convert   convert.CLICmd   `cmd:"" help:"Convert images between pixel-map and other formats"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pixmap"),
		kong.Description("Draw, transform and convert binary pixel-map images."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
