package main

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"time"

	"orefinder/db/migrations"
	httpadapter "orefinder/internal/adapter/http"
	"orefinder/internal/adapter/message/outbox"
	metricsinmem "orefinder/internal/adapter/metrics/inmemory"
	"orefinder/internal/adapter/permission/static"
	gormrepo "orefinder/internal/adapter/repo/gorm"
	"orefinder/internal/adapter/repo/memory"
	worldruntime "orefinder/internal/adapter/world/runtime"
	"orefinder/internal/app/history"
	"orefinder/internal/app/interact"
	"orefinder/internal/app/ports"
	"orefinder/internal/app/presence"
	"orefinder/internal/app/worldedit"
	"orefinder/internal/config"
	"orefinder/internal/domain/cooldown"
	"orefinder/internal/domain/targeting"
	"orefinder/internal/domain/voxel"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const defaultConfigPath = "./configs/orefinder.yaml"

func main() {
	hlog.SetLevel(logLevel(os.Getenv("OREFINDER_LOG_LEVEL")))

	cfg := mustLoadConfig()
	mapping, err := targeting.NewMapping(cfg.Indicate.InHand, cfg.Indicate.LookFor)
	if err != nil {
		hlog.Fatalf("item mapping: %v", err)
	}

	chunkStore, eventRepo, txManager := mustBuildRepos(cfg.Server)
	worldProvider := worldruntime.NewProvider(buildWorldConfig(cfg.World, chunkStore))
	cooldowns := cooldown.NewRegistry(cfg.Server.MaxPlayers, time.Now)
	inbox := outbox.New(cfg.Server.OutboxDepth)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		InteractUC: interact.UseCase{
			Targets:     mapping,
			Cooldowns:   cooldowns,
			World:       worldProvider,
			Sink:        inbox,
			Permissions: static.NewChecker(cfg.Permissions.DefaultAllow, cfg.Permissions.Deny, cfg.Permissions.Grant),
			Events:      eventRepo,
			Metrics:     kpiRecorder,
			Texts:       cfg.Text,
			MaxRadius:   cfg.Search.MaxRadius,
			Steal: interact.StealConfig{
				Enabled: cfg.Functions.BlockStealing,
				Chance:  cfg.Chance.StealBlock,
			},
			Now: time.Now,
		},
		PresenceUC:  presence.UseCase{Cooldowns: cooldowns, Inbox: inbox},
		HistoryUC:   history.UseCase{Events: eventRepo},
		WorldEditUC: worldedit.UseCase{TxManager: txManager, World: worldProvider},
		Inbox:       inbox,
		KPI:         kpiRecorder,
		Token:       cfg.Server.Token,
		CORSOrigin:  cfg.Server.CORSOrigin,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	hlog.Infof("orefinder listening on %s (targets=%d max_players=%d max_radius=%d worlds=%v)",
		cfg.Server.Addr, mapping.Len(), cfg.Server.MaxPlayers, cfg.Search.MaxRadius, cfg.World.IDs)
	s.Spin()
}

func mustLoadConfig() config.Config {
	path := resolveConfigPath()
	cfg := config.Default()
	if path == "" {
		hlog.Warnf("no config file found, using built-in defaults")
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			hlog.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		hlog.Fatalf("config env: %v", err)
	}
	return cfg
}

func resolveConfigPath() string {
	if v := strings.TrimSpace(os.Getenv("OREFINDER_CONFIG")); v != "" {
		return v
	}
	if st, err := os.Stat(defaultConfigPath); err == nil && !st.IsDir() {
		return defaultConfigPath
	}
	return ""
}

func mustBuildRepos(cfg config.Server) (worldruntime.ChunkStore, ports.SearchEventRepository, ports.TxManager) {
	if cfg.DSN == "" {
		hlog.Warnf("OREFINDER_DB_DSN not set, world edits and search history are kept in memory")
		store := memory.NewStore()
		return memory.NewWorldChunkRepo(store), memory.NewSearchEventRepo(store), memory.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		hlog.Fatalf("open postgres: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := gormrepo.ApplyMigrations(ctx, db, migrationsFS(cfg.Migrations)); err != nil {
		hlog.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewWorldChunkRepo(db), gormrepo.NewSearchEventRepo(db), gormrepo.NewTxManager(db)
}

func migrationsFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func buildWorldConfig(cfg config.World, store worldruntime.ChunkStore) worldruntime.Config {
	out := worldruntime.DefaultConfig()
	out.Worlds = cfg.IDs
	out.ChunkStore = store
	switch cfg.Generator {
	case "uniform":
		out.Generator = worldruntime.UniformGenerator{Fill: voxel.Material(cfg.Fill).Normalize()}
	default:
		out.Generator = worldruntime.LayeredGenerator{Seed: cfg.Seed, SurfaceY: cfg.SurfaceY}
	}
	return out
}

func logLevel(v string) hlog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn", "warning":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}
