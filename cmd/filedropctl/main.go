package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/sir_venger/filedrop/pkg/filedropclient"
	"github.com/urfave/cli/v2"
)

var serverFlag = &cli.StringFlag{
	Name:    "server",
	EnvVars: []string{"FILEDROP_URL"},
	Value:   "http://127.0.0.1:3000",
	Usage:   "base URL of the filedrop server",
}

var quietFlag = &cli.BoolFlag{
	Name:  "quiet",
	Value: false,
	Usage: "do not draw progress bar",
}

func main() {
	app := &cli.App{
		Name:  "filedropctl",
		Usage: "Upload and download files to a filedrop server",
		Flags: []cli.Flag{serverFlag, quietFlag},
		Commands: []*cli.Command{
			{
				Name:      "upload",
				Usage:     "upload a local file and print its key",
				ArgsUsage: "<file>",
				Action:    upload,
			},
			{
				Name:      "download",
				Usage:     "download a file by key",
				ArgsUsage: "<key>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output path; defaults to the stored file name, '-' for stdout",
					},
				},
				Action: download,
			},
			{
				Name:      "inspect",
				Usage:     "print size and checksum of a stored file",
				ArgsUsage: "<key>",
				Action:    inspect,
			},
			{
				Name:   "list",
				Usage:  "list stored file names",
				Action: list,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(cCtx *cli.Context) filedropclient.Client {
	var opts []filedropclient.Option
	if !cCtx.Bool(quietFlag.Name) {
		opts = append(opts, filedropclient.WithProgress(os.Stderr))
	}
	return filedropclient.New(cCtx.String(serverFlag.Name), opts...)
}

func upload(cCtx *cli.Context) error {
	path := cCtx.Args().First()
	if path == "" {
		return cli.Exit("file path is required", 1)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	key, err := newClient(cCtx).Upload(cCtx.Context, filepath.Base(path), f, st.Size())
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}

func download(cCtx *cli.Context) error {
	key := cCtx.Args().First()
	if key == "" {
		return cli.Exit("key is required", 1)
	}

	out := cCtx.String("output")
	if out == "-" {
		_, err := newClient(cCtx).Download(cCtx.Context, key, os.Stdout)
		return err
	}

	// Имя файла известно только после ответа сервера, поэтому пишем во временный файл.
	tmp, err := os.CreateTemp(".", ".filedropctl-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	info, err := newClient(cCtx).Download(cCtx.Context, key, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if out == "" {
		out = filepath.Base(info.Name)
		if out == "." || out == string(filepath.Separator) || out == "" {
			out = key
		}
	}
	if err = os.Rename(tmp.Name(), out); err != nil {
		return err
	}
	fmt.Fprintf(cCtx.App.Writer, "%s (%d bytes)\n", out, info.Size)
	return nil
}

func inspect(cCtx *cli.Context) error {
	key := cCtx.Args().First()
	if key == "" {
		return cli.Exit("key is required", 1)
	}

	info, err := newClient(cCtx).Inspect(cCtx.Context, key)
	if err != nil {
		return err
	}
	return printJSON(cCtx.App.Writer, info)
}

func list(cCtx *cli.Context) error {
	names, err := newClient(cCtx).List(cCtx.Context)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(cCtx.App.Writer, n)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
