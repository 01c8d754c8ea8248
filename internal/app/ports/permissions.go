package ports

import "context"

const PermissionUse = "orefinder.use"

type PermissionChecker interface {
	HasPermission(ctx context.Context, entityID int64, node string) (bool, error)
}
