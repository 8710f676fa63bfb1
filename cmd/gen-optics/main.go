package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seitarof/gen-optics/internal/cli"
	"github.com/seitarof/gen-optics/internal/describe"
	"github.com/seitarof/gen-optics/internal/emit"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	feed := describe.New()
	f := emit.NewGoimportsFormatter()
	w := emit.NewFileWriter()
	e := emit.New(f, w)

	runner := cli.NewRunner(feed, e)
	if err := runner.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
