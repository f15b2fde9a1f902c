package main

import (
	"github.com/samber/do"

	"github.com/dhamidi/skim/config"
	"github.com/dhamidi/skim/java/codebase"
)

// rootDirName names the directory the codebase services are built for.
const rootDirName = "skim.root"

// newContainer registers the services commands use. Nothing is built
// until a command invokes it.
func newContainer(configPath string) *do.Injector {
	i := do.New()

	do.Provide(i, func(i *do.Injector) (*config.Config, error) {
		if configPath != "" {
			return config.LoadFile(configPath)
		}
		return config.Load(".")
	})

	do.ProvideNamedValue(i, rootDirName, ".")

	do.Provide(i, func(i *do.Injector) (*codebase.Codebase, error) {
		cfg := do.MustInvoke[*config.Config](i)
		root := do.MustInvokeNamed[string](i, rootDirName)
		return codebase.New(root, codebaseOptions(cfg)...), nil
	})

	do.Provide(i, func(i *do.Injector) (*codebase.FileWatcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		c := do.MustInvoke[*codebase.Codebase](i)
		return codebase.NewFileWatcher(c, cfg.WatchInterval()), nil
	})

	do.Provide(i, func(i *do.Injector) (*codebase.LSPServer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return codebase.NewLSPServer(version, codebaseOptions(cfg)...), nil
	})

	return i
}

// setRootDir points the codebase services at dir. It must run before the
// codebase is first invoked.
func setRootDir(i *do.Injector, dir string) {
	do.OverrideNamedValue(i, rootDirName, dir)
}

func codebaseOptions(cfg *config.Config) []codebase.Option {
	return []codebase.Option{
		codebase.WithParserOptions(cfg.ParserOptions()...),
		codebase.WithExtensions(cfg.Scan.Extensions...),
		codebase.WithWorkers(cfg.Scan.Workers),
		codebase.WithSkipHidden(cfg.Scan.SkipHidden),
	}
}
