package maxout

import (
	"context"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

// demoDays is the number of days before today that demo data covers.
const demoDays = 5

// seedDemo fills a fresh session with a few days of history before today so
// streaks and charts have something to show.
func seedDemo(ctx context.Context, s *service.Session) error {
	faker := gofakeit.New(0)
	today := s.Date()
	weight := faker.Float64Range(70, 95)

	for i := demoDays; i >= 1; i-- {
		day := today.AddDays(-i)
		if _, _, err := s.LogWeight(ctx, service.WeightInput{Weight: weight, Unit: "kg", Day: day}); err != nil {
			return err
		}
		weight -= faker.Float64Range(0, 0.4)

		meals := []struct {
			meal model.MealType
			food string
		}{
			{model.Breakfast, faker.Breakfast()},
			{model.Lunch, faker.Lunch()},
			{model.Dinner, faker.Dinner()},
		}
		for _, m := range meals {
			in := service.FoodInput{Food: m.food, Calories: faker.Number(250, 900), Meal: string(m.meal), Day: day}
			if _, _, err := s.LogFood(ctx, in); err != nil {
				return err
			}
		}
	}
	return nil
}
