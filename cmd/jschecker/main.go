package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/Iborrareddy/js-url-checker/src/server"
)

func main() {

	app := cli.NewApp()

	app.Name = "jschecker"
	app.Version = "0.1.0"
	app.Description = "Check JS URLs and split active/inactive."
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config,c",
			Usage: "config file (optional, flags override it)",
		},
		cli.StringFlag{
			Name:  "input,i",
			Usage: "input file with URLs, one per line",
			Value: "js_files.txt",
		},
		cli.IntFlag{
			Name:  "workers,w",
			Usage: "number of parallel workers",
			Value: 20,
		},
		cli.IntFlag{
			Name:  "timeout,t",
			Usage: "timeout per request (seconds)",
			Value: 12,
		},
		cli.IntFlag{
			Name:  "retries",
			Usage: "retries for transient failures",
			Value: 2,
		},
		cli.IntFlag{
			Name:  "backoff",
			Usage: "backoff base (milliseconds, exponential)",
			Value: 500,
		},
		cli.BoolFlag{
			Name:  "strict",
			Usage: "require Content-Type to look like JavaScript",
		},
		cli.BoolFlag{
			Name:  "download",
			Usage: "download active JS files",
		},
		cli.StringFlag{
			Name:  "outdir",
			Usage: "download folder (with --download)",
			Value: "active_js_downloads",
		},
		cli.StringFlag{
			Name:  "csv",
			Usage: "CSV report file",
			Value: "report.csv",
		},
		cli.IntFlag{
			Name:  "run-timeout",
			Usage: "global run deadline (seconds, 0 disables)",
		},
	}

	s := server.NewServer()
	app.Action = s.Start

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
