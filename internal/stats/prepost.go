package stats

import (
	"sort"

	"healingstat/internal/model"
)

// SortMode 사전/사후 목록 정렬 방식
type SortMode int

const (
	// SortByName 이름 오름차순, 같은 이름이면 사전이 먼저
	SortByName SortMode = iota
	// SortByID ID 오름차순, 같은 ID 면 사전이 먼저
	// ID 가 없는(0) 행은 ID 있는 행 뒤에 모이고 그 안에서는 사전이 먼저
	SortByID
)

func timingRank(t model.Timing) int {
	switch t {
	case model.TimingPre:
		return 0
	case model.TimingPost:
		return 1
	}
	return 2
}

func lessByName(a, b *model.ScoreRecord) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return timingRank(a.PV) < timingRank(b.PV)
}

func lessByID(a, b *model.ScoreRecord) bool {
	if (a.ID == 0) != (b.ID == 0) {
		return a.ID != 0
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return timingRank(a.PV) < timingRank(b.PV)
}

// SortRecords 정렬된 사본을 돌려준다 (입력은 건드리지 않음)
func SortRecords(records []*model.ScoreRecord, mode SortMode) []*model.ScoreRecord {
	out := make([]*model.ScoreRecord, len(records))
	copy(out, records)

	less := lessByName
	if mode == SortByID {
		less = lessByID
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// respondentKey 응답자 구분 (같은 이름이라도 평가지 종류가 다르면 다른 응답)
type respondentKey struct {
	service model.ServiceType
	name    string
}

// PairAndFilter 같은 평가지에 사전/사후가 모두 있는 응답자의 행만 남긴다
// 한쪽만 있는 응답자는 조용히 제외된다
func PairAndFilter(records []*model.ScoreRecord, mode SortMode) []*model.ScoreRecord {
	type seen struct{ pre, post bool }
	byName := make(map[respondentKey]*seen, len(records))
	for _, rec := range records {
		key := respondentKey{rec.Service, rec.Name}
		s, ok := byName[key]
		if !ok {
			s = &seen{}
			byName[key] = s
		}
		switch rec.PV {
		case model.TimingPre:
			s.pre = true
		case model.TimingPost:
			s.post = true
		}
	}

	sorted := SortRecords(records, mode)
	out := make([]*model.ScoreRecord, 0, len(sorted))
	for _, rec := range sorted {
		if s := byName[respondentKey{rec.Service, rec.Name}]; s.pre && s.post {
			out = append(out, rec)
		}
	}
	return out
}

// SplitByTiming 사전/사후 행 분리
func SplitByTiming(records []*model.ScoreRecord) (pre, post []*model.ScoreRecord) {
	for _, rec := range records {
		switch rec.PV {
		case model.TimingPre:
			pre = append(pre, rec)
		case model.TimingPost:
			post = append(post, rec)
		}
	}
	return pre, post
}

// CountRespondents 서로 다른 응답자 이름 수
func CountRespondents(records []*model.ScoreRecord) int {
	names := make(map[string]struct{}, len(records))
	for _, rec := range records {
		names[rec.Name] = struct{}{}
	}
	return len(names)
}
