package configloader

import "github.com/yaklabco/gomdhl/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.ClassPrefix != "" {
		result.ClassPrefix = override.ClassPrefix
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Write is CLI-only, so only true can arrive from an override.
	if override.Write {
		result.Write = true
	}

	if override.PersistDetected != nil {
		result.PersistDetected = config.Bool(*override.PersistDetected)
	}
	if override.Memo.Enabled != nil {
		result.Memo.Enabled = config.Bool(*override.Memo.Enabled)
	}
	if override.Memo.TTL != 0 {
		result.Memo.TTL = override.Memo.TTL
	}

	if override.NodeTypes != nil {
		result.NodeTypes = append([]string(nil), override.NodeTypes...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
