// Package buildinfo reports version information embedded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

// BuildInfo contém informações de versão da aplicação
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Module    string
}

// Get extrai informações de build usando debug.BuildInfo
func Get() BuildInfo {
	info := BuildInfo{
		Version:   "dev",
		Commit:    "unknown",
		Date:      "unknown",
		GoVersion: "unknown",
		Module:    "unknown",
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info = fromDebug(info, buildInfo)
	}

	return info
}

func fromDebug(info BuildInfo, buildInfo *debug.BuildInfo) BuildInfo {
	info.GoVersion = buildInfo.GoVersion
	info.Module = buildInfo.Main.Path

	// Se a versão do módulo principal estiver disponível
	if buildInfo.Main.Version != "(devel)" && buildInfo.Main.Version != "" {
		info.Version = buildInfo.Main.Version
	}

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				info.Commit = setting.Value[:7] // Short commit hash
			} else {
				info.Commit = setting.Value
			}
		case "vcs.time":
			info.Date = setting.Value
		}
	}

	return info
}

// Print exibe informações de versão formatadas
func Print(w io.Writer, name string) {
	info := Get()
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "Version: %s\n", info.Version)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Module: %s\n", info.Module)
}
