package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/app/models"
)

// Object types for the schema. Resolution leans on the models' json tags
// via FieldResolveFn closures so the GraphQL shape stays decoupled from
// the GORM structs.

var permissionEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Permission",
	Values: graphql.EnumValueConfigMap{
		"USER":             &graphql.EnumValueConfig{Value: string(models.PermUser)},
		"ADMIN":            &graphql.EnumValueConfig{Value: string(models.PermAdmin)},
		"ITEMCREATE":       &graphql.EnumValueConfig{Value: string(models.PermItemCreate)},
		"ITEMUPDATE":       &graphql.EnumValueConfig{Value: string(models.PermItemUpdate)},
		"ITEMDELETE":       &graphql.EnumValueConfig{Value: string(models.PermItemDelete)},
		"PERMISSIONUPDATE": &graphql.EnumValueConfig{Value: string(models.PermPermissionUpdate)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.User).ID, nil
		}},
		"name": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.User).Name, nil
		}},
		"email": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.User).Email, nil
		}},
		"permissions": &graphql.Field{Type: graphql.NewList(permissionEnum), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.User).Permissions().Strings(), nil
		}},
	},
})

var itemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Item",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Item).ID, nil
		}},
		"title": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Item).Title, nil
		}},
		"description": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Item).Description, nil
		}},
		"image": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Item).Image, nil
		}},
		"largeImage": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Item).LargeImage, nil
		}},
		"price": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return int(p.Source.(models.Item).Price), nil
		}},
	},
})

var cartItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartItem",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.CartItem).ID, nil
		}},
		"quantity": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.CartItem).Quantity, nil
		}},
		"item": &graphql.Field{Type: itemType, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.CartItem).Item, nil
		}},
	},
})

var orderItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderItem",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).ID, nil
		}},
		"title": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).Title, nil
		}},
		"description": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).Description, nil
		}},
		"image": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).Image, nil
		}},
		"price": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return int(p.Source.(models.OrderItem).Price), nil
		}},
		"quantity": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).Quantity, nil
		}},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).ID, nil
		}},
		"total": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return int(p.Source.(models.Order).Total), nil
		}},
		"charge": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).Charge, nil
		}},
		"items": &graphql.Field{Type: graphql.NewList(orderItemType), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).Items, nil
		}},
	},
})

var successType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SuccessMessage",
	Fields: graphql.Fields{
		"message": &graphql.Field{Type: graphql.String},
	},
})
