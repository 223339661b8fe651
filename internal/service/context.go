package service

import (
	"context"

	"shoeshop/internal/models"
)

// Состояние сеанса оператора живёт в context.Context запроса, а не в
// процессных глобалах: кто вошёл, какая роль, какой товар/заказ редактируется.
type ctxKey string

const (
	ctxLoginKey   ctxKey = "login"
	ctxRoleKey    ctxKey = "role"
	ctxItemIDKey  ctxKey = "itemID"
	ctxOrderIDKey ctxKey = "orderID"
)

func WithCurrentUser(ctx context.Context, login string, role models.Role) context.Context {
	ctx = context.WithValue(ctx, ctxLoginKey, login)
	return context.WithValue(ctx, ctxRoleKey, role)
}

func CurrentLogin(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLoginKey).(string)
	return v, ok
}

func CurrentRole(ctx context.Context) (models.Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(models.Role)
	return v, ok
}

func WithItemID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxItemIDKey, id)
}

func CurrentItemID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxItemIDKey).(int64)
	return v, ok
}

func WithOrderID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxOrderIDKey, id)
}

func CurrentOrderID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxOrderIDKey).(int64)
	return v, ok
}

// Действия, доступные роли в клиенте.
var roleActions = map[models.Role][]string{
	models.RoleAdministrator: {"Search", "Sort", "Filter", "Orders"},
	models.RoleManager:       {"Search", "Sort", "Filter", "Orders"},
	models.RoleClient:        {},
	models.RoleGuest:         {},
}

func RoleActions(role models.Role) []string {
	if actions, ok := roleActions[role]; ok {
		return actions
	}
	return []string{}
}

// IsStaff — роли, которым разрешены изменения каталога и заказов.
func IsStaff(role models.Role) bool {
	return role == models.RoleAdministrator || role == models.RoleManager
}
