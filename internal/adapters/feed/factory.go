package feed

import (
	"fmt"

	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// NewChangeNotifier builds the notifier selected by NOTIFIER_TYPE
func NewChangeNotifier(cfg *config.NotifierConfig) (ports.ChangeNotifier, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("notifier config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.NotifierTypeMemory:
		return NewMemoryChangeNotifier(), nil
	case config.NotifierTypeRedis:
		notifier, err := NewRedisChangeNotifier(&cfg.Redis, cfg.Channel)
		if err != nil {
			return nil, err
		}
		return notifier, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported notifier type: %s", cfg.Type.String()), nil)
	}
}
