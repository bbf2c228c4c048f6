package cache

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 通过策略名字创建缓存的配置
type Config struct {
	Policy   Policy `yaml:"policy"`
	Capacity int    `yaml:"capacity"`
	// PolicyTTL使用
	TTL time.Duration `yaml:"ttl"`
	// PolicyBoundedTTL使用
	TTLMin time.Duration `yaml:"ttl_min"`
	TTLMax time.Duration `yaml:"ttl_max"`
}

// ParseConfig 解析YAML配置，时间使用"1m30s"这样的格式，不认识的字段会报错
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config: %v", ErrInvalidArgument, err)
	}
	p, err := ParsePolicy(string(cfg.Policy))
	if err != nil {
		return Config{}, err
	}
	cfg.Policy = p
	return cfg, nil
}

// New 根据配置创建写入时不需要额外参数的缓存
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (Store[K, V], error) {
	// 分开判断err，避免把nil指针包装成非nil的接口
	switch cfg.Policy {
	case PolicyFIFO:
		c, err := NewFIFO(cfg.Capacity, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case PolicyLRU:
		c, err := NewLRU(cfg.Capacity, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case PolicyLFU:
		c, err := NewLFU(cfg.Capacity, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case PolicyRandom:
		c, err := NewRandom(cfg.Capacity, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case PolicyTTL:
		c, err := NewTTL(cfg.Capacity, cfg.TTL, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case PolicyBoundedTTL:
		c, err := NewBoundedTTL(cfg.Capacity, cfg.TTLMin, cfg.TTLMax, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidArgument, cfg.Policy)
}
