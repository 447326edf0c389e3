package main

import (
	"log"
	"net/http"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/content"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/serverapp"
)

func main() {
	env, err := serverapp.LoadEnv()
	if err != nil {
		log.Fatalf("load env: %v", err)
	}

	cfg := content.Default()
	if env.ContentPath != "" {
		cfg, err = content.Load(env.ContentPath)
		if err != nil {
			log.Fatalf("load content: %v", err)
		}
	}
	cfg.Balance = content.BalanceFromEnv(cfg.Balance)

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       env.DataDir,
		StaticDir:     env.StaticDir,
		UseDiskStatic: env.DevStatic,
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", env.Addr)
	log.Fatal(http.ListenAndServe(env.Addr, handler))
}
