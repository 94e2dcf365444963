package models

type Recommendation string

const (
	RecommendationPromote       Recommendation = "promote"
	RecommendationPriceOptimize Recommendation = "price_optimize"
	RecommendationRenameRemove  Recommendation = "rename_remove"
	RecommendationMaintain      Recommendation = "maintain"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// PlatformAll disables platform filtering.
const PlatformAll = "all"

const DateLayout = "2006-01-02"
