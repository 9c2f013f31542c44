package main

import "github.com/zintix-labs/tilelab/sdk/perf"

// makefile runner
func main() {
	bindVar()
	if cfg.list {
		listBoards()
		return
	}
	perf.RunPProf(executeSimulator, cfg.pprofmode)
}
