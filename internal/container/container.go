// Package container manages the optional local Redis docker-compose stack so
// the benchmark can run against a fresh server.
package container

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/fpierfederici/redbench/internal/store"
)

type Config struct {
	Name         string
	ComposeFile  string
	WaitForReady func() error
}

// RedisConfig describes the bundled Redis compose stack listening on the
// given address.
func RedisConfig(addr string) Config {
	return Config{
		Name:        "Redis",
		ComposeFile: "docker/docker-compose.redis.yml",
		WaitForReady: func() error {
			return store.WaitForReady(store.Config{Addr: addr}, 30*time.Second)
		},
	}
}

func Start(cfg Config) error {
	fmt.Printf("Starting fresh %s container...\n", cfg.Name)

	cmd := exec.Command("docker", "compose", "-f", cfg.ComposeFile, "up", "-d")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("start container: %w\noutput: %s", err, string(output))
	}

	fmt.Printf("Waiting for %s to initialize...\n", cfg.Name)
	if err := cfg.WaitForReady(); err != nil {
		return fmt.Errorf("%s failed to start: %w", cfg.Name, err)
	}

	fmt.Println("Container ready")
	return nil
}

func Stop(composeFile string) {
	fmt.Println("\nCleaning up container...")

	cmd := exec.Command("docker", "compose", "-f", composeFile, "down", "-v")
	// Ignore errors on cleanup - container might already be stopped
	cmd.Run()

	fmt.Println("Container stopped and removed")
}
