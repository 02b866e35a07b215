package docstore

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/migrations"
)

func TestSpannerStore(t *testing.T) {
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}
	runStoreSuite(t, func(t *testing.T) Store {
		client := newEmulatorDatabase(t)
		return NewSpannerStore(client, clock.NewFake(time.Now()))
	})
}

// newEmulatorDatabase creates a fresh database with the embedded schema and
// drops it when the test ends.
func newEmulatorDatabase(t *testing.T) *spanner.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	projectID := env("SPANNER_PROJECT_ID", "test-project")
	instanceID := env("SPANNER_INSTANCE_ID", "emulator-instance")
	databaseID := fmt.Sprintf("ds_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:20])

	parent := fmt.Sprintf("projects/%s", projectID)
	instName := fmt.Sprintf("%s/instances/%s", parent, instanceID)
	dbName := fmt.Sprintf("%s/databases/%s", instName, databaseID)

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	require.NoError(t, err)
	defer instAdmin.Close()
	ensureInstance(ctx, t, instAdmin, parent, instName, instanceID)

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	require.NoError(t, err)

	stmts, err := migrations.Statements()
	require.NoError(t, err)
	op, err := dbAdmin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
		ExtraStatements: stmts,
	})
	require.NoError(t, err)
	_, err = op.Wait(ctx)
	require.NoError(t, err)

	client, err := spanner.NewClient(context.Background(), dbName)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		cctx, ccancel := context.WithTimeout(context.Background(), time.Minute)
		defer ccancel()
		_ = dbAdmin.DropDatabase(cctx, &databasepb.DropDatabaseRequest{Database: dbName})
		dbAdmin.Close()
	})
	return client
}

func ensureInstance(ctx context.Context, t *testing.T, admin *instance.InstanceAdminClient, parent, instName, instanceID string) {
	t.Helper()
	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instName})
	if err == nil {
		return
	}
	require.Equal(t, codes.NotFound, status.Code(err), "GetInstance: %v", err)

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     parent,
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("%s/instanceConfigs/emulator-config", parent),
			DisplayName: "docstore tests",
			NodeCount:   1,
		},
	})
	if err != nil {
		require.Equal(t, codes.AlreadyExists, status.Code(err), "CreateInstance: %v", err)
		return
	}
	_, err = op.Wait(ctx)
	require.NoError(t, err)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
