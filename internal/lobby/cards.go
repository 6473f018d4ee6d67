package lobby

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// SanitizeCards splits raw card text into one card per line, trimming
// whitespace and dropping blank lines and repeats. The first occurrence of
// a repeated card keeps its position.
func SanitizeCards(raw string) []string {
	seen := make(map[string]bool)
	cards := []string{}
	for _, line := range lineBreak.Split(raw, -1) {
		card := strings.TrimSpace(line)
		if card == "" || seen[card] {
			continue
		}
		seen[card] = true
		cards = append(cards, card)
	}
	return cards
}

// DefaultCards is the built-in prompt deck.
var DefaultCards = []string{
	"形のない", "みんなの", "空を飛ぶ", "外国の", "回る", "おいしい", "使うとなくなる", "美しい", "私の好きな",
	"赤い", "青い", "黒い", "白い", "大きい", "小さい", "長い", "短い", "速い", "遅い", "硬い", "柔らかい", "冷たい", "温かい",
	"丸い", "四角い", "尖った", "軽い", "重い", "薄い", "厚い", "新しい", "古い", "高い", "安い",
	"季節の", "学校の", "家の", "仕事の", "旅行の", "日本の", "外国の町の", "海の", "山の", "空の", "地下の",
	"音の出る", "光る", "香る", "動く", "止まる", "伸びる", "縮む",
	"朝の", "夜の", "休日の", "雨の日の", "晴れの日の",
	"皆で使う", "一人で使う", "身につける", "身近な", "遠い",
	"甘い", "酸っぱい", "苦い", "辛い", "しょっぱい",
	"古典的な", "最新の", "人気の", "珍しい", "危ない", "安全な",
	"動物の", "植物の", "機械の", "食べ物の", "飲み物の", "道具の", "場所の", "イベントの",
}

// DefaultCardsText returns DefaultCards one per line.
func DefaultCardsText() string {
	return strings.Join(DefaultCards, "\n")
}
