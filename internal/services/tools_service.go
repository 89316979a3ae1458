package services

import (
	"fmt"
	"math"
	"strings"

	"tabi/internal/models/response_models"
	"tabi/pkg/utils"
)

const (
	PhraseDining    = "dining"
	PhraseShopping  = "shopping"
	PhraseTransport = "transport"
	PhraseDaily     = "daily"
	phraseAll       = "all"
)

type ToolsServiceInterface interface {
	ConvertJPY(jpy float64) response_models.CurrencyResponse
	ConvertTWD(twd float64) response_models.CurrencyResponse
	Phrases(category string) ([]response_models.PhraseResponse, error)
}

type ToolsService struct {
	rate float64
}

// NewToolsService takes the JPY to TWD rate.
func NewToolsService(rate float64) ToolsServiceInterface {
	return &ToolsService{rate: rate}
}

func (s *ToolsService) ConvertJPY(jpy float64) response_models.CurrencyResponse {
	return response_models.CurrencyResponse{JPY: jpy, TWD: math.Round(jpy * s.rate), Rate: s.rate}
}

func (s *ToolsService) ConvertTWD(twd float64) response_models.CurrencyResponse {
	resp := response_models.CurrencyResponse{TWD: twd, Rate: s.rate}
	if s.rate > 0 {
		resp.JPY = math.Round(twd / s.rate)
	}
	return resp
}

// Phrases filters the phrasebook; "" and "all" return every phrase.
func (s *ToolsService) Phrases(category string) ([]response_models.PhraseResponse, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == phraseAll {
		out := make([]response_models.PhraseResponse, len(phrasebook))
		copy(out, phrasebook)
		return out, nil
	}

	out := []response_models.PhraseResponse{}
	for _, p := range phrasebook {
		if p.Category == category {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: phrase category %q", utils.ErrInvalidInput, category)
	}
	return out, nil
}

var phrasebook = []response_models.PhraseResponse{
	{Category: PhraseDining, Zh: "不好意思 / 請問", Jp: "すみません", Romaji: "Sumimasen"},
	{Category: PhraseDining, Zh: "有英文菜單嗎？", Jp: "英語のメニューはありますか？", Romaji: "Eigo no menyuu wa arimasu ka?"},
	{Category: PhraseDining, Zh: "沒有預約，2位可以嗎？", Jp: "予約していないんですが、2人いいですか？", Romaji: "Yoyaku shite inai n desu ga, futari ii desu ka?"},
	{Category: PhraseDining, Zh: "我是預約1點的 [名字]。", Jp: "1時に予約した [Name] です。", Romaji: "Ichiji ni yoyaku shita [Name] desu."},
	{Category: PhraseDining, Zh: "(對應:準備好點餐了嗎？) 是的，我要這個。", Jp: "はい、これをお願いします。", Romaji: "Hai, kore o onegaishimasu."},
	{Category: PhraseDining, Zh: "請給我一個這個。", Jp: "これ、ひとつお願いします。", Romaji: "Kore, hitotsu onegaishimasu."},
	{Category: PhraseDining, Zh: "請給我筷子。(兩雙)", Jp: "お箸をお願いします。(二膳)", Romaji: "Ohashi o onegaishimasu. (Nizen)"},
	{Category: PhraseDining, Zh: "請給我水。", Jp: "お水をお願いします。", Romaji: "Omizu o onegaishimasu."},
	{Category: PhraseDining, Zh: "請不要加蔥。", Jp: "ネギ抜きでお願いします。", Romaji: "Negi nuki de onegaishimasu."},
	{Category: PhraseDining, Zh: "我要結帳。", Jp: "お会計お願いします。", Romaji: "Okaikei onegaishimasu."},
	{Category: PhraseDining, Zh: "請分開結帳。", Jp: "別々でお願いします。", Romaji: "Betsubetsu de onegaishimasu."},

	{Category: PhraseShopping, Zh: "這個可以試穿嗎？", Jp: "これ、試着できますか？", Romaji: "Kore, shichaku dekimasu ka?"},
	{Category: PhraseShopping, Zh: "有其他尺寸嗎？", Jp: "他のサイズがありますか？", Romaji: "Hoka no saizu ga arimasu ka?"},
	{Category: PhraseShopping, Zh: "這可以免稅嗎？", Jp: "これは免税になりますか？", Romaji: "Kore wa menzei ni narimasu ka?"},
	{Category: PhraseShopping, Zh: "不用塑膠袋。", Jp: "袋はいりません。", Romaji: "Fukuro wa irimasen."},
	{Category: PhraseShopping, Zh: "可以用信用卡嗎？", Jp: "クレジットカードが使えますか？", Romaji: "Kurejitto kaado ga tsukaemasu ka?"},
	{Category: PhraseShopping, Zh: "這些是全部的菜單嗎？(問更多選項)", Jp: "メニューはこれで全部ですか？", Romaji: "Menyuu wa kore de zenbu desu ka?"},
	{Category: PhraseShopping, Zh: "我要這個。", Jp: "これをください。", Romaji: "Kore o kudasai."},

	{Category: PhraseTransport, Zh: "我要下車！(擁擠電車時)", Jp: "降ります！", Romaji: "Orimasu!"},
	{Category: PhraseTransport, Zh: "請載我到 [這裡]。(計程車)", Jp: "[Place] までお願いします。", Romaji: "[Place] made onegaishimasu."},
	{Category: PhraseTransport, Zh: "請在這裡停車。", Jp: "ここで止めてください。", Romaji: "Koko de tomete kudasai."},
	{Category: PhraseTransport, Zh: "我要搭下一班。(電梯/電車過擠)", Jp: "つぎにします。", Romaji: "Tsugi ni shimasu."},
	{Category: PhraseTransport, Zh: "請按5樓。", Jp: "5階 おねがいします。", Romaji: "Gokai onegaishimasu."},

	{Category: PhraseDaily, Zh: "我要辦理入住。", Jp: "チェックインお願いします。", Romaji: "Chekkuin onegaishimasu."},
	{Category: PhraseDaily, Zh: "可以寄放行李嗎？", Jp: "荷物を預かってもらえますか？", Romaji: "Nimotsu o azukatte moraemasu ka?"},
	{Category: PhraseDaily, Zh: "Wi-Fi 密碼是什麼？", Jp: "Wi-Fiのパスワードは何ですか？", Romaji: "Waifai no pasuwaado wa nan desu ka?"},
	{Category: PhraseDaily, Zh: "廁所在哪裡？", Jp: "トイレはどこですか？", Romaji: "Toire wa doko desu ka?"},
}
