package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/pkg/errors"

	"gridkit"
	"gridkit/dataset/duck"
	nt "gridkit/entity"
	"gridkit/store"
	duckstore "gridkit/store/duck"
	"gridkit/store/sqlite"
	"gridkit/store/yamlfile"
	"gridkit/util"
)

//go:embed sample.yaml
var sample []byte

// Config is the command's yaml configuration.
type Config struct {
	LogFile string         `yaml:"log_file"`
	Data    string         `yaml:"data"`
	Store   StoreConfig    `yaml:"store"`
	Table   gridkit.Config `yaml:"table"`
}

// StoreConfig picks where layouts persist: yaml, duck or sqlite.
type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

func main() {

	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	wrote, err := util.SampleConfig(sample, cfgPath, 0o644)
	check(err)
	if wrote {
		fmt.Printf("wrote sample config to %s\n", cfgPath)
	}

	cfg := &Config{}
	err = util.LoadConfig(cfg, cfgPath)
	check(err)

	logFile := util.OpenLog(cfg.LogFile, 0o644)
	defer util.CloseLog(logFile)

	ctx := context.Background()
	lgr := &sabot.Sabot{Writer: logFile}

	backend, err := openBackend(ctx, cfg.Store, lgr)
	check(err)
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	dk, err := duck.New(lgr)
	check(err)
	defer dk.Close()

	err = dk.Load(ctx, cfg.Data)
	check(err)

	st := store.New(ctx, backend, lgr)
	inst := cfg.Table.New(ctx, st, lgr)
	inst.Mount(ctx)
	defer inst.Unmount(ctx)

	model := gridkit.NewModel(ctx, inst, dk, lgr)
	_, err = tea.NewProgram(model).Run()
	if err != nil {
		lgr.Error(ctx, "program failed", err)
		check(err)
	}
}

func openBackend(ctx context.Context, cfg StoreConfig, lgr nt.Logger) (backend store.Backend, err error) {

	switch cfg.Kind {
	case "", "yaml":
		backend = yamlfile.New(cfg.Path, lgr)
	case "duck":
		backend, err = duckstore.New(ctx, cfg.Path, lgr)
	case "sqlite":
		backend, err = sqlite.New(ctx, cfg.Path, lgr)
	case "memory":
		backend = store.NewMemory(nil)
	default:
		err = errors.Errorf("unknown store kind %q", cfg.Kind)
	}
	return
}

func check(err error) {

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
