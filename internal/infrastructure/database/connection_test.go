package database

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/shared/config"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	database, err := Open(&config.DatabaseConfig{Driver: DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)

	var one int
	require.NoError(t, database.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitAndClose(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: DriverSQLite, DSN: "file::memory:"}))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := OpenRedis(context.Background(), &config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = OpenRedis(context.Background(), &config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
