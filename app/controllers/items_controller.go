package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

// ItemResource shapes the public catalogue feed. The owner id stays
// internal.
type ItemResource struct{ resource.Base }

func (ItemResource) ToArray(v interface{}) resource.Map {
	m, _ := v.(map[string]interface{})
	return resource.Map{
		"id":          m["ID"],
		"title":       m["title"],
		"description": m["description"],
		"image":       m["image"],
		"largeImage":  m["largeImage"],
		"price":       m["price"],
	}
}

// ListItems is the plain-REST catalogue feed, a paginated mirror of the
// GraphQL items query for integrations that don't speak GraphQL.
func ListItems(c *ctx.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, pagination, err := services.NewItemService(database.DB).All(page, limit)
	if err != nil {
		c.Error(http.StatusServiceUnavailable, "catalogue unavailable")
		return
	}

	resource.CollectionOf(ItemResource{}, items).
		WithPagination(pagination).
		Respond(c.W)
}
