package model

// 프로그램 분야 (고정 8개, 표시 순서 그대로)
const (
	CategoryForestEducation = "산림교육"
	CategoryPrevention      = "예방교육"
	CategoryForestTherapy   = "산림치유"
	CategoryArt             = "아트"
	CategoryRelaxing        = "릴렉싱"
	CategoryEnergetic       = "에너제틱"
	CategoryCooking         = "쿠킹"
	CategoryEvent           = "이벤트"
)

// Categories 피벗 열 순서
var Categories = []string{
	CategoryForestEducation,
	CategoryPrevention,
	CategoryForestTherapy,
	CategoryArt,
	CategoryRelaxing,
	CategoryEnergetic,
	CategoryCooking,
	CategoryEvent,
}

// IsCategory 고정 분야 이름인지 확인
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ProgramResult 프로그램 운영 결과 한 건
type ProgramResult struct {
	ID      int64  `json:"id"`
	Agency  string `json:"agency"`
	OpenDay string `json:"openDay"`
	EndDay  string `json:"endDay"`

	// ProgramInOut2 id,분야,비고,내부강사수,외부강사수 5개 단위 반복
	ProgramInOut2 string `json:"PROGRAM_IN_OUT2"`
}

// CategoryProgramEntry PROGRAM_IN_OUT2 에서 분리한 프로그램 한 건
type CategoryProgramEntry struct {
	ProgramID string `json:"programId"`
	Category  string `json:"category"`
	Note      string `json:"note"`
	Internal  int    `json:"internal"`
	External  int    `json:"external"`
}

// BunyaSatisfactionEntry 분야별 만족도 한 건
type BunyaSatisfactionEntry struct {
	ProgramID int64   `json:"programId,omitempty"`
	Bunya     string  `json:"bunya"`
	Program   float64 `json:"program"` // 강사
	Content   float64 `json:"content"` // 내용구성
	Effect    float64 `json:"effect"`  // 효과성
	Cnt       float64 `json:"cnt"`     // 참여인원
}
