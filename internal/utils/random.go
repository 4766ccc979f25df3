package utils

import (
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// WorkerNameFromChineseName 将中文名转换成拼音形式的员工名字，例如 "王小明" -> "Wang Xiaoming"
func WorkerNameFromChineseName(chineseName string) string {
	syllables := pinyin.LazyConvert(chineseName, nil)
	if len(syllables) == 0 {
		return ""
	}

	surname := capitalize(syllables[0])
	if len(syllables) == 1 {
		return surname
	}
	return surname + " " + capitalize(strings.Join(syllables[1:], ""))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GenerateRandomPreferences 为每一天随机生成偏好，大约四分之一的日子没有偏好
func GenerateRandomPreferences() map[domain.Day]domain.ShiftKind {
	preferences := make(map[domain.Day]domain.ShiftKind, domain.DaysPerWeek)
	for _, day := range domain.Days {
		if rand.Intn(4) == 0 {
			continue
		}
		preferences[day] = domain.ShiftKinds[rand.Intn(len(domain.ShiftKinds))]
	}
	return preferences
}

func GenerateRandomWorker() *domain.Worker {
	return &domain.Worker{
		Name:        WorkerNameFromChineseName(GenerateRandomChineseName()),
		Preferences: GenerateRandomPreferences(),
	}
}
