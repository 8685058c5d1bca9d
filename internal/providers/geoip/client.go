// Package geoip resolves IP addresses against a local MaxMind City database.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/oschwald/geoip2-golang"

	"geolocator/internal/types"
)

var (
	// ErrAddressRequired is returned when no address is given. Unlike
	// hosted services a database cannot infer the caller's address.
	ErrAddressRequired = errors.New("an IP address is required for database lookups")

	ErrInvalidAddress = errors.New("invalid IP address")
)

// Language used to pick localized names from the database records
const Language = "en"

// cityReader is the part of *geoip2.Reader the client uses
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

type Client struct {
	db     cityReader
	logger *slog.Logger
}

// Open loads the database at path. The caller must Close the client.
func Open(path string, logger *slog.Logger) (*Client, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %q: %w", path, err)
	}
	meta := db.Metadata()
	logger = logger.With("component", "geoip-client")
	logger.Info("geoip database loaded",
		"path", path,
		"type", meta.DatabaseType,
		"build_epoch", meta.BuildEpoch,
	)
	return &Client{db: db, logger: logger}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// LookupPlace finds the city and country of ip
func (c *Client) LookupPlace(ctx context.Context, ip string) (types.Place, error) {
	if err := ctx.Err(); err != nil {
		return types.Place{}, err
	}
	if ip == "" {
		return types.Place{}, ErrAddressRequired
	}
	addr := net.ParseIP(ip)
	if addr == nil {
		return types.Place{}, fmt.Errorf("%w: %s", ErrInvalidAddress, ip)
	}

	record, err := c.db.City(addr)
	if err != nil {
		return types.Place{}, fmt.Errorf("failed to look up %s: %w", ip, err)
	}

	place := types.Place{
		City:    record.City.Names[Language],
		Country: record.Country.Names[Language],
	}
	if place.Country == "" {
		place.Country = record.Country.IsoCode
	}

	c.logger.Debug("geoip lookup", "ip", ip, "city", place.City, "country", place.Country)

	return place, nil
}
