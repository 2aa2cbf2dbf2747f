// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package search

// pinyinBuckets maps pinyin initials to the common Chinese characters
// they cover. The table is intentionally small: it only needs to cover
// the vocabulary that actually appears in product names and categories,
// and unmapped runes pass through untouched.
var pinyinBuckets = []struct {
	initial rune
	chars   string
}{
	{'a', "阿啊吖"},
	{'b', "把百白班板宝爸北被备本比毕边变标表别并不部"},
	{'c', "才采彩菜参草层曾查产长常场厂车成城程吃出处楚初"},
	{'d', "大代带单但当到道的得等低地第点电店定东动都读度"},
	{'e', "额恩而二"},
	{'f', "发法反方房放非分份丰风封佛否夫服福府父付"},
	{'g', "该改概干刚高告格各给工公共够古故关管光广规国果过"},
	{'h', "还孩海害含汉好号合和河黑很红后候湖护花化话坏欢环会"},
	{'j', "几己记济加家价检见件建健江将讲交角教接街节结解介金近进经京境究决绝觉"},
	{'k', "开看考科可空口苦快块况亏困"},
	{'l', "拉来蓝老乐类离李里理力历利例连两辆了料林另留六龙楼路录旅绿"},
	{'m', "马吗买卖满慢忙毛么没每美门们梦米面民明名命模某目"},
	{'n', "那南难脑呢内能你年念女农"},
	{'o', "哦"},
	{'p', "怕排盘旁跑朋片品平评破普"},
	{'q', "其起气期前钱千强桥亲轻请秋求球区取去趣全却"},
	{'r', "然让热人认日容如入软弱"},
	{'s', "三色森杀山上少社身深什生声胜师十时识实始世事是收手受书术数双谁水说思死四送素虽所"},
	{'t', "他她台太谈堂套特疼提题体天条听厅通同头图外湾完万王望为文问我无五物务西吸希息习系下夏先现相想向像小校些心新信星行性型修许需续选学雪血"},
	{'w', "外湾完万王望为文问我无五物务"},
	{'x', "西吸希息习系下夏先现相想向像小校些心新信星行性型修许需续选学雪血"},
	{'y', "亚烟言阳样要也业夜一以已亿义艺易意因音印应英影硬用由油游友有又右于与语育预元员院愿月越云运"},
	{'z', "杂在再早怎增展占战张章找着这真整正政之知直值职只指至制中众重洲主注住助专转装准资子自字总走最作做坐座"},
}

// pinyinInitials is the inverted lookup. Buckets are applied in order
// and the first bucket containing a rune wins, matching lookup order in
// the table above (some runes appear in more than one bucket).
var pinyinInitials = func() map[rune]rune {
	m := make(map[rune]rune)
	for _, bucket := range pinyinBuckets {
		for _, ch := range bucket.chars {
			if _, ok := m[ch]; !ok {
				m[ch] = bucket.initial
			}
		}
	}
	return m
}()

// transliterate reduces text to its pinyin-initial form: every mapped
// Chinese character becomes its single initial letter, everything else
// passes through unchanged.
func transliterate(text string) string {
	out := make([]rune, 0, len(text))
	for _, ch := range text {
		if initial, ok := pinyinInitials[ch]; ok {
			out = append(out, initial)
		} else {
			out = append(out, ch)
		}
	}
	return string(out)
}
