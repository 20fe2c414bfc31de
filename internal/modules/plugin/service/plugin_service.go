package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/plugin/domain"
	pluginout "studylog/internal/modules/plugin/port/out"
	apperrors "studylog/internal/platform/errors"
)

type PluginService struct {
	store  pluginout.ManifestStore
	host   pluginout.Host
	logger hclog.Logger
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host, logger hclog.Logger) *PluginService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginService{store: store, host: host, logger: logger.Named("plugin")}
}

func (s *PluginService) List(ctx context.Context) ([]domain.Manifest, error) {
	return s.loadValidated(ctx)
}

type Diagnosis struct {
	Manifest        domain.Manifest
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Err             error
}

// Doctor inspects every manifest, including invalid ones, without failing
// on the first broken plugin.
func (s *PluginService) Doctor(ctx context.Context) ([]Diagnosis, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]Diagnosis, 0, len(manifests))
	for _, m := range manifests {
		d := Diagnosis{Manifest: m}
		if err := m.Validate(); err != nil {
			d.Err = err
			results = append(results, d)
			continue
		}
		d.BinaryReachable = fileExists(m.Binary)
		if d.BinaryReachable {
			d.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		switch {
		case !d.BinaryReachable:
			d.Err = fmt.Errorf("binary does not exist: %s", m.Binary)
		case !d.ChecksumValid:
			d.Err = domain.ErrChecksumMismatch
		case m.Enabled && s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				d.Err = err
			} else {
				d.LifecycleOK = true
			}
		}
		s.logger.Debug("plugin diagnosed", "name", m.Name, "reachable", d.BinaryReachable, "checksum", d.ChecksumValid, "lifecycle", d.LifecycleOK)
		results = append(results, d)
	}
	return results, nil
}

func (s *PluginService) ListCommands(ctx context.Context, pluginName string) ([]domain.CommandDescriptor, error) {
	manifest, err := s.runnableManifest(ctx, pluginName)
	if err != nil {
		return nil, err
	}
	return s.host.ListCommands(ctx, manifest)
}

// Command resolves a command of a runnable plugin. The manifest must grant
// the capability the command declares.
func (s *PluginService) Command(ctx context.Context, pluginName, commandID string) (domain.Manifest, domain.CommandDescriptor, error) {
	manifest, err := s.runnableManifest(ctx, pluginName)
	if err != nil {
		return domain.Manifest{}, domain.CommandDescriptor{}, err
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return domain.Manifest{}, domain.CommandDescriptor{}, err
	}
	command, err := findCommand(commands, commandID)
	if err != nil {
		return domain.Manifest{}, domain.CommandDescriptor{}, err
	}
	if !manifest.HasCapability(command.Kind) {
		return domain.Manifest{}, domain.CommandDescriptor{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, command.Kind)
	}
	return manifest, command, nil
}

func (s *PluginService) Run(ctx context.Context, manifest domain.Manifest, command domain.CommandDescriptor, request domain.RunRequest) (domain.RunResult, error) {
	if request.InputJSON != "" && !json.Valid([]byte(request.InputJSON)) {
		return domain.RunResult{}, fmt.Errorf("%w: input must be valid JSON", apperrors.ErrInvalidInput)
	}
	request.CommandID = command.ID
	request.Timeout = command.Timeout()
	if err := request.Validate(); err != nil {
		return domain.RunResult{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	result, err := s.host.Run(ctx, manifest, request)
	if err != nil {
		return domain.RunResult{}, err
	}
	s.logger.Info("plugin command finished", "name", manifest.Name, "command", command.ID, "exit_code", result.ExitCode)
	return result, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seen[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *PluginService) runnableManifest(ctx context.Context, pluginName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	var manifest domain.Manifest
	found := false
	for _, item := range manifests {
		if item.Name == pluginName {
			manifest, found = item, true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("plugin %q: %w", pluginName, apperrors.ErrNotFound)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func findCommand(commands []domain.CommandDescriptor, commandID string) (domain.CommandDescriptor, error) {
	for _, command := range commands {
		if err := command.Validate(); err != nil {
			return domain.CommandDescriptor{}, err
		}
		if command.ID == commandID {
			return command, nil
		}
	}
	return domain.CommandDescriptor{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, commandID)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
