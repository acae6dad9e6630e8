package graphql

import (
	"github.com/graphql-go/graphql"
	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/services"
	gql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

// NewSchema assembles the full query and mutation surface against r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	return gql.NewSchema(queryRoot(r), mutationRoot(r))
}

func queryRoot(r *Resolver) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.Auth.Me(p.Context)
					if apperr.KindOf(err) == apperr.Unauthenticated {
						// Signed-out visitors get null, not an error.
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return user, nil
				}),
			},
			"item": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Items.Find(id)
				}),
			},
			"items": &graphql.Field{
				Type: graphql.NewList(itemType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					items, _, err := r.Items.All(argInt(p, "page", 1), argInt(p, "limit", 20))
					return items, err
				}),
			},
			"cart": &graphql.Field{
				Type: graphql.NewList(cartItemType),
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.Cart.Lines(p.Context)
				}),
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Checkout.Order(p.Context, id)
				}),
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					orders, _, err := r.Checkout.Orders(p.Context, argInt(p, "page", 1), argInt(p, "limit", 20))
					return orders, err
				}),
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					users, _, err := r.Auth.Users(p.Context, argInt(p, "page", 1), argInt(p, "limit", 50))
					return users, err
				}),
			},
		},
	})
}

func mutationRoot(r *Resolver) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					session, err := r.Auth.Signup(services.SignupInput{
						Name:     argString(p, "name"),
						Email:    argString(p, "email"),
						Password: argString(p, "password"),
					})
					if err != nil {
						return nil, err
					}
					setSession(p.Context, session.Token)
					return session.User, nil
				}),
			},
			"signin": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					session, err := r.Auth.Signin(argString(p, "email"), argString(p, "password"))
					if err != nil {
						return nil, err
					}
					setSession(p.Context, session.Token)
					return session.User, nil
				}),
			},
			"signout": &graphql.Field{
				Type: successType,
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					clearSession(p.Context)
					return map[string]string{"message": "Goodbye!"}, nil
				}),
			},
			"requestReset": &graphql.Field{
				Type: successType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Auth.RequestReset(argString(p, "email")); err != nil {
						return nil, err
					}
					return map[string]string{"message": "Thanks! Check your email for a reset link"}, nil
				}),
			},
			"resetPassword": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"resetToken":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"confirmPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					session, err := r.Auth.ResetPassword(
						argString(p, "resetToken"),
						argString(p, "password"),
						argString(p, "confirmPassword"),
					)
					if err != nil {
						return nil, err
					}
					setSession(p.Context, session.Token)
					return session.User, nil
				}),
			},
			"updatePermissions": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"permissions": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(permissionEnum))},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					targetID, err := argID(p, "userId")
					if err != nil {
						return nil, err
					}
					raw, _ := p.Args["permissions"].([]interface{})
					names := make([]string, 0, len(raw))
					for _, v := range raw {
						if s, ok := v.(string); ok {
							names = append(names, s)
						}
					}
					return r.Auth.UpdatePermissions(p.Context, targetID, names)
				}),
			},
			"createItem": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"image":       &graphql.ArgumentConfig{Type: graphql.String},
					"largeImage":  &graphql.ArgumentConfig{Type: graphql.String},
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.Items.Create(p.Context, services.ItemInput{
						Title:       argString(p, "title"),
						Description: argString(p, "description"),
						Image:       argString(p, "image"),
						LargeImage:  argString(p, "largeImage"),
						Price:       int64(argInt(p, "price", 0)),
					})
				}),
			},
			"updateItem": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"price":       &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Items.Update(p.Context, id, services.ItemUpdate{
						Title:       optString(p, "title"),
						Description: optString(p, "description"),
						Price:       optInt64(p, "price"),
					})
				}),
			},
			"deleteItem": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Items.Delete(p.Context, id)
				}),
			},
			"addToCart": &graphql.Field{
				Type: cartItemType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quantity": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					itemID, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Cart.AddToCart(p.Context, itemID, argInt(p, "quantity", 1))
				}),
			},
			"removeFromCart": &graphql.Field{
				Type: cartItemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					lineID, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return r.Cart.RemoveFromCart(p.Context, lineID)
				}),
			},
			"checkout": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.Checkout.Checkout(p.Context, argString(p, "token"))
				}),
			},
		},
	})
}
