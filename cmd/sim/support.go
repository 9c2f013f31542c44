package main

import (
	"crypto/rand"
	"flag"
	"log"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zintix-labs/tilelab"
	"github.com/zintix-labs/tilelab/catalog"
	"github.com/zintix-labs/tilelab/configs"
	"github.com/zintix-labs/tilelab/logger"
	"github.com/zintix-labs/tilelab/sdk/core"
	"github.com/zintix-labs/tilelab/spec"
	"github.com/zintix-labs/tilelab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	config    string
	worker    int
	sessions  int
	actions   int
	seed      int64
	format    string
	logmode   string
	pprofmode string
	list      bool
}

func bindVar() {
	flag.StringVar(&cfg.config, "config", configs.Default, "embedded config name or path to a yaml/json file")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.sessions, "sessions", 10000, "number of sessions")
	flag.IntVar(&cfg.actions, "actions", 1000, "max actions per session")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.StringVar(&cfg.format, "format", "table", "report format: table, json, yaml")
	flag.StringVar(&cfg.logmode, "log", "silence", "log mode: dev, prod, silence")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.BoolVar(&cfg.list, "list", false, "list embedded boards and exit")

	flag.Parse()

	// given seed illeagel -> default seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

// 這裡解析並分支要執行的模擬器
func executeSimulator() {
	cfg.valid()

	mode, _ := logger.ParseLogMode(cfg.logmode)
	lg, h := logger.NewAsync(4096, mode)
	defer h.Close()

	bs, err := loadSetting(cfg.config)
	if err != nil {
		log.Fatal(err)
	}
	s, err := tilelab.NewSimulatorWithSeed(bs, core.Default(), lg, cfg.seed)
	if err != nil {
		log.Fatal(err)
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	showpb := cfg.format == "table"
	if showpb {
		p.Printf("%s[WORKERS:%d] [BOARD:%s] [SESSIONS:%d] [ACTIONS:%d] [SEED:%d]%s\n",
			green, cfg.worker, bs.BoardName, cfg.sessions, cfg.actions, cfg.seed, reset)
	}

	var (
		st   *stats.Report
		used time.Duration
	)
	if cfg.worker == 1 {
		st, used, err = s.Sim(cfg.sessions, cfg.actions, showpb)
	} else {
		st, used, err = s.SimMP(cfg.sessions, cfg.actions, cfg.worker, showpb)
	}
	if err != nil {
		log.Fatal(err)
	}

	if showpb {
		st.StdOut(used)
		return
	}
	rep, _ := stats.RenderFor(cfg.format)
	if err := st.WriteWith(os.Stdout, rep); err != nil {
		log.Fatal(err)
	}
}

// loadSetting 先找磁碟上的檔案，找不到再以盤面名稱或檔名從內嵌設定讀取
func loadSetting(name string) (*spec.BoardSetting, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return spec.LoadBoardSetting(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	c, err := catalog.NewAuto(configs.FS)
	if err != nil {
		return nil, err
	}
	return c.Setting(name)
}

// listBoards 列出內嵌的所有盤面
func listBoards() {
	c, err := catalog.NewAuto(configs.FS)
	if err != nil {
		log.Fatal(err)
	}
	sum, err := c.Summary()
	if err != nil {
		log.Fatal(err)
	}
	p := message.NewPrinter(language.English)
	for _, s := range sum {
		p.Printf("%-10s %-14s %dx%d (start %d) palette=%s cascade=%s min=%d\n",
			s.Name, s.Config, s.Width, s.Height, s.StartingHeight, strings.Join(s.Palette, ","), s.Cascade, s.SweepMinSize)
	}
}

func (cfg *config) valid() {
	p := message.NewPrinter(language.English)

	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if cfg.sessions < 1 {
		log.Fatal("value err : sessions must > 0")
	}
	if cfg.actions < 1 {
		log.Fatal("value err : actions must > 0")
	}
	if cfg.format != "table" {
		if _, ok := stats.RenderFor(cfg.format); !ok {
			log.Fatalf("value err : unknown format %q", cfg.format)
		}
	}
	if _, ok := logger.ParseLogMode(cfg.logmode); !ok {
		log.Fatalf("value err : unknown log mode %q", cfg.logmode)
	}
	// worker 比局數多沒有意義
	if cfg.worker > cfg.sessions {
		p.Printf("too many workers: %d resized to %d\n", cfg.worker, cfg.sessions)
		cfg.worker = cfg.sessions
	}
}
