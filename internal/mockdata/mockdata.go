// Package mockdata holds the canned payloads the gateway serves when
// USE_MOCK_DATA is enabled, for local development without a live backend.
// The content mirrors the data the designers validated the dashboards with.
package mockdata

import (
	"strconv"
	"time"
)

// KPI is one headline dashboard figure.
type KPI struct {
	Value      string `json:"value"`
	Change     string `json:"change"`
	IsPositive bool   `json:"isPositive"`
	Label      string `json:"label"`
}

// Series is a labeled data series the UI renders as a chart.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// AdminUser is one row of the admin user table.
type AdminUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	LastSeen string `json:"lastSeen"`
	Stories  int    `json:"stories"`
	Spend    string `json:"spend"`
}

// Book is a published storybook summary shown on bookshelf/adventure pages.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	CoverImageURL string    `json:"coverImageUrl"`
	IsMasterpiece bool      `json:"isMasterpiece"`
	CreatedAt     time.Time `json:"createdAt"`
	PageCount     int       `json:"pageCount"`
	AuthorName    string    `json:"authorName"`
	Likes         int       `json:"likes"`
	Views         int       `json:"views"`
	Tags          []string  `json:"tags"`
}

// Plan is one pricing tier.
type Plan struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Benefits    []string `json:"benefits"`
	CTA         string   `json:"cta"`
	IsCurrent   bool     `json:"isCurrent,omitempty"`
	IsPopular   bool     `json:"isPopular,omitempty"`
	Subtext     string   `json:"subtext,omitempty"`
}

// FAQ is one pricing-page question.
type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// RevenueSource is one slice of the revenue breakdown.
type RevenueSource struct {
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}

// Product is one row of the top-selling products table.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// WorldAsset is one encyclopedia entry: a character, place, item or ability
// that appeared in generated stories.
type WorldAsset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Dashboard is the admin dashboard payload.
var Dashboard = map[string]any{
	"kpiData": map[string]KPI{
		"dau":            {Value: "1,284", Change: "+12.5%", IsPositive: true, Label: "일일 활성 사용자"},
		"newSignups":     {Value: "97", Change: "+8.2%", IsPositive: true, Label: "신규 가입자"},
		"revenue":        {Value: "₩450,300", Change: "-2.1%", IsPositive: false, Label: "일일 매출"},
		"storiesCreated": {Value: "312", Change: "+22.0%", IsPositive: true, Label: "이야기 생성 수"},
	},
	"mainFunnelData": Series{
		Labels: []string{"방문", "가입", "첫 이야기 시작", "첫 이야기 완성", "재방문"},
		Data:   []float64{10000, 1284, 980, 450, 600},
	},
	"hourlyActiveUsersData": Series{
		Labels: hourLabels(),
		Data: []float64{10, 8, 12, 20, 35, 50, 60, 75, 90, 110, 120, 115,
			100, 95, 130, 150, 180, 250, 300, 280, 220, 150, 80, 40},
	},
}

// Users is the admin user-analytics payload.
var Users = map[string]any{
	"users": []AdminUser{
		{ID: 1, Email: "user1@example.com", Nickname: "모험가 레오", LastSeen: "2시간 전", Stories: 5, Spend: "₩29,800"},
		{ID: 2, Email: "user2@example.com", Nickname: "탐정 제인", LastSeen: "1일 전", Stories: 2, Spend: "₩0"},
		{ID: 3, Email: "user3@example.com", Nickname: "코미디언 잭", LastSeen: "5분 전", Stories: 12, Spend: "₩14,900"},
		{ID: 4, Email: "user4@example.com", Nickname: "닥터 크로노", LastSeen: "3일 전", Stories: 1, Spend: "₩4,900"},
		{ID: 5, Email: "user5@example.com", Nickname: "캡틴 네모", LastSeen: "1주 전", Stories: 8, Spend: "₩59,600"},
	},
	"retentionData": map[string]any{
		"newSignups":  Series{Data: []float64{65, 59, 80, 81, 56, 90, 97}},
		"returnRates": Series{Data: []float64{45, 42, 55, 60, 48, 58, 62}},
	},
	"userActionsData": Series{
		Labels: []string{"이미지 생성", "공유하기", "퀘스트 완료", "책장 저장", "기타"},
		Data:   []float64{300, 150, 100, 200, 50},
	},
}

// Content is the admin content-analytics payload.
var Content = map[string]any{
	"contentKpis": map[string]KPI{
		"totalStories":   {Value: "1,234", Change: "+50", IsPositive: true, Label: "총 이야기 수"},
		"avgRating":      {Value: "4.8/5", Change: "+0.1", IsPositive: true, Label: "평균 별점"},
		"completionRate": {Value: "72%", Change: "-1%", IsPositive: false, Label: "이야기 완성률"},
	},
	"wordCloudData": Series{
		Labels: []string{"로봇", "공주", "마법", "우정", "모험", "용", "성", "비밀",
			"학교", "친구", "동물", "요정", "왕국", "보물", "악당", "슈퍼히어로"},
		Data: []float64{90, 80, 75, 70, 68, 65, 60, 50, 40, 30, 25, 15, 45, 55, 62, 78},
	},
	"aiAgentPreferenceData": Series{
		Labels: []string{"스토리 작가", "일러스트레이터", "아이디어 제안"},
		Data:   []float64{520, 310, 170},
	},
	"popularPlazaPostsData": PlazaBooks,
}

// Revenue is the admin revenue payload.
var Revenue = map[string]any{
	"revenueData": map[string]any{
		"monthlyRevenue": 52300,
		"revenueBySource": []RevenueSource{
			{Source: "Organic Search", Value: 22300},
			{Source: "Paid Ads", Value: 15000},
			{Source: "Direct", Value: 10000},
			{Source: "Referral", Value: 5000},
		},
		"topSellingProducts": []Product{
			{ID: "prod_1", Name: "Adventure Story Pack", Sales: 150, Revenue: 15000},
			{ID: "prod_2", Name: "Sci-Fi World Builder", Sales: 120, Revenue: 12000},
			{ID: "prod_3", Name: "Fantasy Character Set", Sales: 95, Revenue: 9500},
			{ID: "prod_4", Name: "Interactive Mystery Novel", Sales: 80, Revenue: 8000},
		},
	},
}

// PlazaBooks are the community plaza's most liked storybooks.
var PlazaBooks = []Book{
	{ID: "book-1", Title: "아리와의 첫 만남", AuthorName: "모험가 레오", Summary: "별빛 소녀와 AI 로봇의 만남",
		CoverImageURL: "https://images.unsplash.com/photo-1581092919533-22b5c3527a13", IsMasterpiece: true,
		Likes: 1250, Views: 8520, Tags: []string{"#로봇", "#우정", "#감동"}},
	{ID: "book-2", Title: "사라진 별빛 펜던트", AuthorName: "탐정 제인", Summary: "사라진 펜던트를 찾는 추리 모험",
		CoverImageURL: "https://images.unsplash.com/photo-1521587760476-6c12a4b040da",
		Likes:         830, Views: 4500, Tags: []string{"#추리", "#모험", "#미스터리"}},
	{ID: "book-3", Title: "웃지 않는 왕국의 비밀", AuthorName: "이야기꾼 샘", Summary: "웃음을 되찾기 위한 여정",
		CoverImageURL: "https://images.unsplash.com/photo-1565347523940-32134aa3a682",
		Likes:         980, Views: 6100, Tags: []string{"#판타지", "#마법", "#감동"}},
}

// BookshelfBooks are the user's own storybooks.
var BookshelfBooks = []Book{
	{ID: "1", Title: "별빛 용의 전설", Summary: "용감한 용과 함께 떠나는 마법의 여정. 별빛을 되찾기 위한 모험이 펼쳐집니다.",
		CoverImageURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f", IsMasterpiece: true,
		CreatedAt: time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC), PageCount: 12,
		AuthorName: "AI 공학자", Likes: 990, Views: 8100, Tags: []string{"SF", "우정", "로봇", "감동"}},
	{ID: "2", Title: "시간을 걷는 소녀", Summary: "과거와 미래를 넘나드는 소녀의 신비한 능력. 시간을 되돌려 소중한 것을 지켜낼 수 있을까?",
		CoverImageURL: "https://images.unsplash.com/photo-1516979187457-637abb4f9353",
		CreatedAt:     time.Date(2023, 11, 15, 14, 30, 0, 0, time.UTC), PageCount: 20,
		AuthorName: "용 사냥꾼", Likes: 1150, Views: 9300, Tags: []string{"모험", "판타지", "드래곤", "액션"}},
	{ID: "3", Title: "마법의 숲과 비밀의 문", Summary: "평범한 소년이 우연히 발견한 비밀의 문. 그 너머에는 놀라운 마법의 숲이 펼쳐진다.",
		CoverImageURL: "https://images.unsplash.com/photo-1532012197267-da84d127e765",
		CreatedAt:     time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC), PageCount: 15,
		AuthorName: "탐험가 제독", Likes: 1204, Views: 8500, Tags: []string{"모험", "판타지", "해저", "미스터리"}},
}

// AdventureBooks are featured community adventures.
var AdventureBooks = []Book{
	{ID: "adv1", Title: "해저 왕국 탐험", Summary: "신비로운 해저 도시 아틀란티스의 비밀을 파헤쳐보세요.",
		CoverImageURL: "https://images.unsplash.com/photo-1578271887552-5ac3a72752bc", IsMasterpiece: true,
		CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), PageCount: 25,
		AuthorName: "탐험가 제독", Likes: 1204, Views: 8500, Tags: []string{"모험", "판타지", "해저"}},
	{ID: "adv2", Title: "하늘섬 구출 작전", Summary: "떠다니는 섬 라퓨타에 갇힌 친구들을 구출하는 스팀펑크 모험.",
		CoverImageURL: "https://plus.unsplash.com/premium_vector-1725285394622-af12d0b2434c",
		CreatedAt:     time.Date(2024, 2, 20, 14, 30, 0, 0, time.UTC), PageCount: 30,
		AuthorName: "발명가 에디", Likes: 980, Views: 7200, Tags: []string{"모험", "스팀펑크", "우정"}},
	{ID: "adv3", Title: "드래곤의 산맥", Summary: "전설의 드래곤이 잠들어 있다는 위험한 산맥을 탐험하세요.",
		CoverImageURL: "https://images.unsplash.com/photo-1577493340887-b7bfff550145",
		CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), PageCount: 22,
		AuthorName: "용 사냥꾼", Likes: 1150, Views: 9300, Tags: []string{"모험", "판타지", "드래곤"}},
}

// Plans are the pricing tiers.
var Plans = []Plan{
	{Title: "Freemium", Description: "기본 기능 제공", Price: "무료",
		Benefits: []string{"기본 동화 1권 무료 생성", "기본 텍스트-이미지 생성", "동화 PDF 다운로드"},
		CTA:      "현재 플랜", IsCurrent: true},
	{Title: "스파크 플랜", Description: "핵심 기능 제공", Price: "월 14,900원~",
		Benefits: []string{"무제한 동화 생성", "✨ 더 아름다운 프리미엄 그림체 무제한",
			"2인극 드라마 및 배경음악 다운로드", "모든 기능 무제한 이용"},
		CTA: "14일 무료 체험 시작하기", IsPopular: true, Subtext: "언제든 쉽게 해지할 수 있어요."},
	{Title: "크레딧 팩", Description: "특별한 기능 제공", Price: "4,900원~",
		Benefits: []string{"실물 하드커버 동화책 제작/배송", "특별 테마 및 캐릭터 팩 구매", "생일/기념일 맞춤 선물 패키지"},
		CTA:      "필요할 때 충전하기"},
}

// FAQs are the pricing-page questions.
var FAQs = []FAQ{
	{Q: "크레딧은 무엇이고, 어디에 사용되나요?",
		A: "크레딧은 실물 동화책을 주문하거나, 특별한 캐릭터 팩, 새로운 그림 스타일 등을 구매하는 데 사용되는 재화입니다. 구독 플랜과 별개로 필요할 때마다 충전하여 사용할 수 있습니다."},
	{Q: "구독하면 지금 만든 동화책도 업그레이드되나요?",
		A: "네, 그렇습니다! 스파크 플랜을 구독하시면 기존에 Freemium으로 만드셨던 동화책에도 프리미엄 그림체를 적용하거나, 오디오 드라마를 생성하는 등 모든 기능을 사용하실 수 있습니다."},
	{Q: "실물 책 배송은 얼마나 걸리나요?",
		A: "주문 제작 상품으로, 주문 완료 후 제작에 약 3-5 영업일이 소요되며, 배송은 지역에 따라 추가로 1-3 영업일이 소요될 수 있습니다."},
}

// EncyclopediaItems are the world-building encyclopedia entries.
var EncyclopediaItems = []WorldAsset{
	{ID: "char1", Name: "에단", Category: "character", Summary: "별빛 용의 전설의 용감한 주인공.",
		Description: "따뜻한 마음씨를 가졌지만, 때로는 무모할 정도로 용감하다. 고대 유물에 대한 해박한 지식을 가지고 있다.",
		ImageURL:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d",
		CreatedAt:   time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},
	{ID: "loc1", Name: "속삭이는 숲", Category: "place", Summary: "고대 정령들이 살고 있는 신비로운 숲.",
		Description: "밤이 되면 나무들이 서로 소곤거린다고 전해진다. 숲의 중심부에는 모든 것을 치유하는 샘이 있다고 알려져 있다.",
		ImageURL:    "https://images.unsplash.com/photo-1448375240586-882707db888b",
		CreatedAt:   time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
	{ID: "item1", Name: "시간의 나침반", Category: "item", Summary: "시간을 되돌리거나 미래를 볼 수 있는 유물.",
		Description: "오직 순수한 마음을 가진 자만이 사용할 수 있으며, 잘못 사용하면 시간의 흐름을 뒤엉키게 만들 수 있다.",
		ImageURL:    "https://images.unsplash.com/photo-1516503424803-708327384b90",
		CreatedAt:   time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)},
}

func hourLabels() []string {
	labels := make([]string, 24)
	for i := range labels {
		labels[i] = strconv.Itoa(i) + "시"
	}
	return labels
}
