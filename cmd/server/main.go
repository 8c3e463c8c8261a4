package main

import (
	"fmt"
	"log/slog"
	"os"

	"familytree/internal/config"
	"familytree/internal/dsl"
	"familytree/internal/family"
	"familytree/internal/handler"
	"familytree/internal/service"
	"familytree/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger()
	slog.SetDefault(logger)
	gin.SetMode(cfg.Server.Mode)

	pathManager := storage.NewPathManager(cfg.Data.RootPath, cfg.Data.Namespace)
	personStorage := storage.NewPersonStorage(pathManager)

	tree, err := openTree(personStorage, cfg.Family.FilePath, logger)
	if err != nil {
		logger.Error("failed to open family tree", "error", err)
		os.Exit(1)
	}
	logger.Info("family tree loaded", "people", tree.Len(), "data_dir", pathManager.GetPeopleDir())

	requestValidator := service.NewRequestValidator()
	personService := service.NewPersonService(tree, personStorage, requestValidator, logger)
	relationshipService := service.NewRelationshipService(tree, logger)

	router := handler.NewRouter(
		handler.NewPersonHandler(personService),
		handler.NewRelationshipHandler(relationshipService),
		logger,
	)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "api", fmt.Sprintf("http://localhost%s/api/v1", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openTree restores the tree from storage. An empty store is seeded from the
// family document when one exists.
func openTree(personStorage *storage.PersonStorage, seedPath string, logger *slog.Logger) (*family.Tree, error) {
	tree, err := personStorage.LoadTree()
	if err != nil {
		return nil, err
	}
	if tree.Len() > 0 {
		return tree, nil
	}

	if _, err := os.Stat(seedPath); err != nil {
		logger.Warn("no family document to seed from, starting empty", "path", seedPath)
		return tree, nil
	}

	loader := dsl.NewLoader(seedPath)
	if err := loader.Load(); err != nil {
		return nil, err
	}
	seeded := loader.Tree()
	if err := personStorage.SaveTree(seeded); err != nil {
		return nil, err
	}
	logger.Info("seeded storage from family document", "path", seedPath, "people", seeded.Len())
	return seeded, nil
}
