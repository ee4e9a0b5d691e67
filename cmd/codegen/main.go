package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/nvrthles/river-pod/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	arityCountKey = "count"
	outputPathKey = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the CombineN provider helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityCountKey,
				Usage: "Highest combine arity to generate",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  outputPathKey,
				Usage: "File to write the generated helpers to",
				Value: "combine_generated.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for combine helpers started!")
	defer func() {
		log.Printf("Codegen for combine helpers finished in %v", time.Since(start))
	}()

	maxArity := int(cmd.Uint(arityCountKey))
	outPath := cmd.String(outputPathKey)

	contents := templates.CombineGen(maxArity)
	if err := os.WriteFile(outPath, []byte(contents), 0644); err != nil {
		return err
	}

	return nil
}
