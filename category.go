package bookkbot

import "github.com/slack-go/slack"

type categoryGroup struct {
	Main string
	Subs []string
}

// The two-level book taxonomy, in dialog display order. Sub-category
// names double as the join key for parent lookups.
var bookCategories = []categoryGroup{
	{"경영/경제", []string{"경영일반", "경제일반", "통계/회계", "마케팅/세일즈", "기업경영/리더십", "재테크/금융/부동산"}},
	{"인문/사회", []string{"사회일반", "인문일반", "페미니즘", "외교/정치", "인권/사회", "역사/문학"}},
	{"예술/문화", []string{"미술", "음악", "건축", "무용", "사진", "영화", "만화", "디자인"}},
	{"자기계발", []string{"취업/창업", "삶의 자세", "기획/리더십", "설득/화술/협상", "인간관계/처세술"}},
	{"시/에세이", []string{"시", "에세이"}},
	{"소설", []string{"고전", "현대", "역사", "동화", "판타지", "SF"}},
	{"여행", []string{"국내", "해외"}},
	{"종교", []string{"종교일반", "불교", "개신교", "천주교", "힌두교", "가톨릭교", "이슬람교", "기타 종교"}},
	{"외국어", []string{"영어일반", "어학시험", "생활영어", "비즈니스영어", "기타 외국어"}},
	{"수학/과학/공학", []string{"수학", "공학", "자연과학", "응용과학"}},
	{"컴퓨터/IT", []string{"IT자격증", "IT비즈니스", "컴퓨터공학/이론", "개발/프로그래밍"}},
	{"건강/취미", []string{"생활습관", "음식/요리", "운동/스포츠", "기타"}},
}

// parentCategory resolves the main category a sub-category belongs to.
// Should a sub-category label ever appear under two main categories,
// the first match in table order wins.
func parentCategory(sub string) (string, bool) {
	for _, group := range bookCategories {
		for _, s := range group.Subs {
			if s == sub {
				return group.Main, true
			}
		}
	}
	return "", false
}

func categoryOptionGroups() []slack.DialogOptionGroup {
	groups := make([]slack.DialogOptionGroup, 0, len(bookCategories))
	for _, category := range bookCategories {
		options := make([]slack.DialogSelectOption, 0, len(category.Subs))
		for _, sub := range category.Subs {
			options = append(options, slack.DialogSelectOption{Label: sub, Value: sub})
		}
		groups = append(groups, slack.DialogOptionGroup{Label: category.Main, Options: options})
	}
	return groups
}
