package weather

import (
	"context"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/function"
	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
)

const (
	WeatherFunctionName     = "get_weather"
	TemperatureFunctionName = "get_temperature"
	ConditionFunctionName   = "get_weather_condition"
)

// SystemPrompt asks for weather information and travel recommendations
const SystemPrompt = "You are a helpful weather assistant that gives current weather information like temperature " +
	"and weather condition, and additionally provides travel recommendations based on the weather conditions."

// DefaultQuestion is used when the user enters nothing
const DefaultQuestion = "What's the weather like in New York and London?"

// Definitions returns the weather functions backed by table
func Definitions(table *Table) []function.Definition {
	location := llm.Parameter{
		Name:        "location",
		Type:        "string",
		Description: "The name of the city",
		Required:    true,
	}
	return []function.Definition{
		{
			Function: llm.Function{
				Name:        WeatherFunctionName,
				Description: "Get the current temperature and weather condition for a city",
				Parameters: llm.ObjectSchema(llm.Parameter{
					Name:        "city",
					Type:        "string",
					Description: "The name of the city",
					Required:    true,
				}),
			},
			Handler: func(_ context.Context, args function.Arguments) (any, error) {
				return table.Lookup(args.String("city"))
			},
		},
		{
			Function: llm.Function{
				Name:        TemperatureFunctionName,
				Description: "Get the temperature for a given location",
				Parameters:  llm.ObjectSchema(location),
			},
			Handler: func(_ context.Context, args function.Arguments) (any, error) {
				r, err := table.Lookup(args.String("location"))
				if err != nil {
					return nil, err
				}
				return map[string]any{"location": r.City, "temperature": r.Temperature, "unit": r.Unit}, nil
			},
		},
		{
			Function: llm.Function{
				Name:        ConditionFunctionName,
				Description: "Get the weather condition for a given location",
				Parameters:  llm.ObjectSchema(location),
			},
			Handler: func(_ context.Context, args function.Arguments) (any, error) {
				r, err := table.Lookup(args.String("location"))
				if err != nil {
					return nil, err
				}
				return map[string]any{"location": r.City, "condition": r.Condition}, nil
			},
		},
	}
}
