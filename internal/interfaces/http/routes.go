package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
)

// RouteGroup identifica un grupo de rutas gobernado por la tabla de roles.
type RouteGroup string

const (
	GroupProducts   RouteGroup = "products"
	GroupLots       RouteGroup = "lots"
	GroupWarehouses RouteGroup = "warehouses"
	GroupClients    RouteGroup = "clients"
	GroupSales      RouteGroup = "sales"
	GroupQuotes     RouteGroup = "quotes"
	GroupPriceLists RouteGroup = "price_lists"
	GroupDashboard  RouteGroup = "dashboard"
)

// roleTable es la única fuente de verdad de autorización: qué roles pueden
// entrar a cada grupo de rutas. La usan el middleware y GET /api/menu; no hay
// listas de roles duplicadas en handlers.
var roleTable = map[RouteGroup][]string{
	GroupProducts:   {entity.RoleAdmin, entity.RoleVendedor, entity.RoleDeposito},
	GroupLots:       {entity.RoleAdmin, entity.RoleDeposito},
	GroupWarehouses: {entity.RoleAdmin, entity.RoleDeposito},
	GroupClients:    {entity.RoleAdmin, entity.RoleVendedor, entity.RoleComex},
	GroupSales:      {entity.RoleAdmin, entity.RoleVendedor},
	GroupQuotes:     {entity.RoleAdmin, entity.RoleComex},
	GroupPriceLists: {entity.RoleAdmin, entity.RoleVendedor},
	GroupDashboard:  {entity.RoleAdmin},
}

// menuOrder fija el orden estable del menú de navegación.
var menuOrder = []RouteGroup{
	GroupDashboard, GroupSales, GroupProducts, GroupLots,
	GroupWarehouses, GroupClients, GroupPriceLists, GroupQuotes,
}

// Authorize reporta si un rol puede acceder a un grupo de rutas.
func Authorize(role string, group RouteGroup) bool {
	for _, r := range roleTable[group] {
		if r == role {
			return true
		}
	}
	return false
}

// MenuFor devuelve los grupos visibles para un rol, en orden de menú.
func MenuFor(role string) []RouteGroup {
	var out []RouteGroup
	for _, g := range menuOrder {
		if Authorize(role, g) {
			out = append(out, g)
		}
	}
	return out
}

// RequireGroup corta con 403 cuando el rol del token no está habilitado para
// el grupo. Corre después de AuthMiddleware.
func RequireGroup(group RouteGroup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Authorize(GetRole(c), group) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    domain.KindForbidden.String(),
				Message: "el rol no tiene acceso a " + string(group),
			})
		}
		return c.Next()
	}
}
