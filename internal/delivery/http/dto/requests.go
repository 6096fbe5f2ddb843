package dto

// SetLevelRequest sets one skill level. Level is a pointer so that 0 passes "required".
type SetLevelRequest struct {
	Level *int `json:"level" validate:"required,min=0,max=10"`
}

type SetLevelsRequest struct {
	Levels map[string]int `json:"levels" validate:"required,min=1,dive,keys,required,endkeys,min=0,max=10"`
}

type JobPageQuery struct {
	Limit  int `query:"limit" validate:"min=0,max=1000"`
	Offset int `query:"offset" validate:"min=0"`
}
