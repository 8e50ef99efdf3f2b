package session

// User-visible notices, carried over verbatim from the web client.
const (
	welcomeNotice = "안녕하세요, 꼬마 창작자님! 오늘은 어떤 멋진 이야기를 만들어 볼까요? 제게 이야기를 들려달라고 하거나 재미있는 그림을 그려달라고 해보세요! 🎨✨"

	offlineNotice = "서버와 연결되어 있지 않습니다. 페이지를 새로고침해주세요."

	historyFailedNotice = "이전 대화 기록을 불러오는 데 실패했습니다."

	audioReadyNotice = "오디오 드라마 생성이 완료되었어요! 🎧 하단의 플레이어로 감상해보세요."

	audioRequestedNotice = "🎧 오디오 생성을 요청했습니다."
)

// ActionGenerateAudio asks the backend to produce the audio drama for the
// current story.
const ActionGenerateAudio = "generate_audio"
