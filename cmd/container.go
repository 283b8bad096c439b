package cmd

import (
	"fmt"

	"github.com/buildops/releasebot/internal/config"
	"github.com/buildops/releasebot/internal/repository"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo       repository.FileSystemRepository
	versionFiles repository.VersionFileRepository
	gitRepo      repository.GitExtendedRepository
	ghRepo       repository.GithubExtendedRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	fsRepo := repository.NewOsFileSystem()
	versionFiles := repository.NewVersionFileRepository(fsRepo, ".")
	gitRepo := repository.NewGitExtendedRepository(cfg.GithubToken)

	// Without a token every GitHub call fails with a descriptive error
	// instead of an authentication failure deep inside the client.
	var ghRepo repository.GithubExtendedRepository
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubExtendedRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	} else {
		ghRepo = repository.NewGithubNoopExtendedRepository(cfg.GithubOwner, cfg.GithubRepo)
	}

	return &container{
		cfg:          cfg,
		log:          log,
		fsRepo:       fsRepo,
		versionFiles: versionFiles,
		gitRepo:      gitRepo,
		ghRepo:       ghRepo,
	}, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(newGetVersionCmd(c))
	rootCmd.AddCommand(newBumpVersionCmd(c))
	rootCmd.AddCommand(newCreateReleaseCmd(c))
	rootCmd.AddCommand(newUpdateSubmoduleCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
