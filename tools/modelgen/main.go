package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

func main() {
	var dsn, out, tables string
	flag.StringVar(&dsn, "dsn", os.Getenv("OREFINDER_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&tables, "tables", "world_chunks,search_events", "comma separated tables to generate")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or OREFINDER_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	for _, table := range strings.Split(tables, ",") {
		if table = strings.TrimSpace(table); table != "" {
			g.GenerateModel(table)
		}
	}
	g.Execute()

	fmt.Printf("generated gorm models for %s at %s\n", tables, out)
}
