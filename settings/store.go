// Package settings owns the mutable half of the module system: which modules
// are enabled and what values their settings hold. Definitions stay in the
// modules package; everything here is persisted.
package settings

import (
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/lunarweave/modctl/internal/models"
	"github.com/lunarweave/modctl/modules"
)

// Store persists module enablement state and setting values, with a
// read-through cache in front of the database. All consistency guarantees
// live at this boundary; callers never touch the rows directly.
type Store struct {
	db    *gorm.DB
	cache *gocache.Cache
}

// NewStore creates a settings store backed by the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func enabledCacheKey(moduleKey string) string {
	return "enabled:" + moduleKey
}

func valueCacheKey(moduleKey, input string) string {
	return fmt.Sprintf("value:%s:%s", moduleKey, input)
}

// IsEnabled returns the persisted enablement state for a module, falling back
// to the descriptor's default when the module has never been toggled.
func (s *Store) IsEnabled(d *modules.Descriptor) bool {
	if v, ok := s.cache.Get(enabledCacheKey(d.Key)); ok {
		return v.(bool)
	}

	var state models.ModuleState
	result := s.db.Where("module_key = ?", d.Key).First(&state)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.WithError(result.Error).WithField("module", d.Key).Warn("failed to query module state")
		}
		return d.EnabledByDefault
	}

	s.cache.Set(enabledCacheKey(d.Key), state.Enabled, gocache.DefaultExpiration)
	return state.Enabled
}

// SetEnabled persists the enablement state for a module.
func (s *Store) SetEnabled(moduleKey string, enabled bool) error {
	var state models.ModuleState
	result := s.db.Where("module_key = ?", moduleKey).First(&state)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		state = models.ModuleState{ModuleKey: moduleKey, Enabled: enabled}
		if err := s.db.Create(&state).Error; err != nil {
			return errors.Wrap(err, "failed to create module state record")
		}
	} else if result.Error != nil {
		return errors.Wrap(result.Error, "failed to query module state record")
	} else {
		state.Enabled = enabled
		if err := s.db.Save(&state).Error; err != nil {
			return errors.Wrap(err, "failed to update module state record")
		}
	}

	s.cache.Delete(enabledCacheKey(moduleKey))
	log.WithFields(log.Fields{"module": moduleKey, "enabled": enabled}).Info("module state updated")
	return nil
}

// Value returns the persisted value for a setting, decoded from its JSON
// representation, or the definition's default when nothing has been stored.
func (s *Store) Value(moduleKey string, def modules.SettingDefinition) interface{} {
	if v, ok := s.cache.Get(valueCacheKey(moduleKey, def.Input)); ok {
		return v
	}

	var row models.SettingValue
	result := s.db.Where("module_key = ? AND input = ?", moduleKey, def.Input).First(&row)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.WithError(result.Error).WithFields(log.Fields{
				"module": moduleKey,
				"input":  def.Input,
			}).Warn("failed to query setting value")
		}
		return def.DefaultValue
	}

	var value interface{}
	if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"module": moduleKey,
			"input":  def.Input,
		}).Warn("stored setting value is not valid JSON, using default")
		return def.DefaultValue
	}

	s.cache.Set(valueCacheKey(moduleKey, def.Input), value, gocache.DefaultExpiration)
	return value
}

// SetValues persists a batch of option values for a module in a single
// transaction. Values are stored JSON encoded.
func (s *Store) SetValues(moduleKey string, values map[string]interface{}) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for input, value := range values {
			encoded, err := json.Marshal(value)
			if err != nil {
				return errors.Wrapf(err, "failed to encode value for option %s", input)
			}

			var row models.SettingValue
			result := tx.Where("module_key = ? AND input = ?", moduleKey, input).First(&row)
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				row = models.SettingValue{ModuleKey: moduleKey, Input: input, Value: string(encoded)}
				if err := tx.Create(&row).Error; err != nil {
					return errors.Wrapf(err, "failed to create setting record for option %s", input)
				}
			} else if result.Error != nil {
				return errors.Wrapf(result.Error, "failed to query setting record for option %s", input)
			} else {
				row.Value = string(encoded)
				if err := tx.Save(&row).Error; err != nil {
					return errors.Wrapf(err, "failed to update setting record for option %s", input)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for input := range values {
		s.cache.Delete(valueCacheKey(moduleKey, input))
	}
	log.WithFields(log.Fields{"module": moduleKey, "options": len(values)}).Info("module settings updated")
	return nil
}
