package services

import (
	"strings"

	"github.com/tablecraft/insight-engine/pkg/models"
)

// attributeRule pairs a category with the name fragments that imply it.
type attributeRule struct {
	category    models.GameAttributeCategory
	keywords    []string
	description string
}

// attributeRules is evaluated top to bottom; the first keyword hit wins.
// Identifier fragments come first on purpose: a field like "parent_id" is
// an identifier before it is a reference.
var attributeRules = []attributeRule{
	{
		category:    models.AttributeCategoryIdentifier,
		keywords:    []string{"id", "uid", "guid", "key", "code"},
		description: "identifies records or links them to other tables",
	},
	{
		category:    models.AttributeCategoryProgression,
		keywords:    []string{"level", "lvl", "exp", "experience", "rank", "grade", "stage"},
		description: "tracks player or item advancement",
	},
	{
		category:    models.AttributeCategoryCombatStat,
		keywords:    []string{"hp", "health", "attack", "atk", "defense", "def", "damage", "dmg", "armor", "speed", "crit"},
		description: "feeds into combat calculations",
	},
	{
		category:    models.AttributeCategoryEconomy,
		keywords:    []string{"price", "cost", "gold", "coin", "currency", "sell", "buy", "reward"},
		description: "participates in the game economy",
	},
	{
		category:    models.AttributeCategoryQuality,
		keywords:    []string{"quality", "rarity", "tier"},
		description: "grades items by quality or rarity",
	},
	{
		category:    models.AttributeCategoryProbability,
		keywords:    []string{"weight", "rate", "chance", "prob", "percent"},
		description: "controls random rolls and drop odds",
	},
	{
		category:    models.AttributeCategoryReference,
		keywords:    []string{"ref", "parent", "owner", "source", "target"},
		description: "points at another record",
	},
	{
		category:    models.AttributeCategoryDescriptive,
		keywords:    []string{"name", "desc", "text", "title", "label", "comment", "note"},
		description: "human-readable display text",
	},
}

// ClassifyAttribute guesses a field's semantic role from its name alone.
// Matching is a case-insensitive substring test against the ordered rule
// table; unmatched fields classify as unknown. Stateless.
func ClassifyAttribute(fieldName string) models.AttributeType {
	lower := strings.ToLower(fieldName)

	for _, rule := range attributeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return models.AttributeType{
					FieldName:   fieldName,
					Category:    rule.category,
					Description: rule.description,
				}
			}
		}
	}

	return models.AttributeType{
		FieldName:   fieldName,
		Category:    models.AttributeCategoryUnknown,
		Description: "no recognized naming pattern",
	}
}
