package scenario

import (
	"context"
	"net/http"

	"github.com/Apurer/petstore-contract-suite/internal/contract/endpoints"
	"github.com/Apurer/petstore-contract-suite/internal/contract/expect"
	"github.com/Apurer/petstore-contract-suite/internal/contract/fixture"
	"github.com/Apurer/petstore-contract-suite/internal/contract/schema"
)

var orderFields = []string{"id", "petId", "quantity", "status", "complete"}

func storeScenarios() []Scenario {
	return []Scenario{
		{ID: "store/place-order", Feature: FeatureStore, Title: "Place an order", Run: placeOrder},
		{ID: "store/get-order", Feature: FeatureStore, Title: "Get order by id", Run: getOrderByID},
		{ID: "store/delete-order", Feature: FeatureStore, Title: "Delete order by id", Run: deleteOrderByID},
		{ID: "store/get-nonexistent-order", Feature: FeatureStore, Title: "Get a nonexistent order", Run: getNonexistentOrder},
		{ID: "store/inventory", Feature: FeatureStore, Title: "Get store inventory", Run: getInventory},
	}
}

func placeOrder(ctx context.Context, env *Env) error {
	payload := fixture.DefaultOrder()
	res, err := env.Post(ctx, "place the order", endpoints.StoreOrder, payload)
	if res != nil && res.StatusCode == http.StatusOK {
		env.Fixtures.TrackOrder(1)
	}
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check status code", func() error {
		return expect.Status(res, http.StatusOK)
	}); err != nil {
		return err
	}
	return env.Check(ctx, "check returned order fields", func() error {
		return expect.All(
			schema.OrderSchema.ValidateJSON(res.Body),
			expect.FieldsEqual(res.Body, payload, orderFields...),
		)
	})
}

func getOrderByID(ctx context.Context, env *Env) error {
	order, err := env.Given(ctx, "place an order", env.Fixtures.CreateOrder)
	if err != nil {
		return err
	}
	id, err := idFrom(order)
	if err != nil {
		return err
	}
	res, err := env.Get(ctx, "get the order by id", endpoints.OrderByID(id), nil)
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check status code", func() error {
		return expect.Status(res, http.StatusOK)
	}); err != nil {
		return err
	}
	return env.Check(ctx, "check order matches the created one", func() error {
		return expect.FieldsEqual(res.Body, order, orderFields...)
	})
}

func deleteOrderByID(ctx context.Context, env *Env) error {
	order, err := env.Given(ctx, "place an order", env.Fixtures.CreateOrder)
	if err != nil {
		return err
	}
	id, err := idFrom(order)
	if err != nil {
		return err
	}
	res, err := env.Delete(ctx, "delete the order", endpoints.OrderByID(id))
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check delete status", func() error {
		return expect.Status(res, http.StatusOK)
	}); err != nil {
		return err
	}
	res, err = env.Get(ctx, "get the deleted order", endpoints.OrderByID(id), nil)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check the order is gone", func() error {
		return expect.Status(res, http.StatusNotFound)
	})
}

func getNonexistentOrder(ctx context.Context, env *Env) error {
	res, err := env.Get(ctx, "get an order that does not exist", endpoints.OrderByID(NonexistentID), nil)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check status code", func() error {
		return expect.Status(res, http.StatusNotFound)
	})
}

func getInventory(ctx context.Context, env *Env) error {
	res, err := env.Get(ctx, "get the inventory", endpoints.StoreInventory, nil)
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check status code", func() error {
		return expect.Status(res, http.StatusOK)
	}); err != nil {
		return err
	}
	return env.Check(ctx, "check approved and delivered counts", func() error {
		return expect.All(
			expect.IsInteger(res.Body, "approved"),
			expect.IsInteger(res.Body, "delivered"),
			schema.InventorySchema.ValidateJSON(res.Body),
		)
	})
}
