package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName(rng *rand.Rand) string {
	surname := commonSurnames[rng.Intn(len(commonSurnames))]
	nameLength := rng.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rng.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateAgentIDFromChineseName 用姓名的拼音（每个字取一个随机长度的前缀）加上随机数字生成人员 ID
func GenerateAgentIDFromChineseName(rng *rand.Rand, chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	id := ""

	for _, py := range pinyinArray {
		length := rng.Intn(len(py)) + 1
		id += py[:length]
	}

	digitsLength := rng.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		id += string(digits[rng.Intn(len(digits))])
	}

	return id
}

// GenerateRandomSkills 从技能表中随机选出一个子集（可能为空）
func GenerateRandomSkills(rng *rand.Rand, vocabulary []string) []string {
	skills := []string{}
	for _, skill := range vocabulary {
		if rng.Intn(2) == 0 {
			skills = append(skills, skill)
		}
	}
	return skills
}

// GenerateRandomAgent 生成一个随机人员，Monitoring 是所有人都可以承担的预约类型，因此不作为技能
func GenerateRandomAgent(rng *rand.Rand, appointmentTypes []string) domain.Agent {
	vocabulary := make([]string, 0, len(appointmentTypes))
	for _, t := range appointmentTypes {
		if t != "Monitoring" {
			vocabulary = append(vocabulary, t)
		}
	}

	return domain.Agent{
		ID:     GenerateAgentIDFromChineseName(rng, GenerateRandomChineseName(rng)),
		Skills: GenerateRandomSkills(rng, vocabulary),
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(rng *rand.Rand, length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rng.Intn(len(letters))]
	}
	return string(randomPassword)
}

// GenerateRandomOperator 生成一个随机的操作人员
func GenerateRandomOperator(rng *rand.Rand, password string, emailDomainName string, role domain.Role) (*domain.Operator, error) {
	fullName := GenerateRandomChineseName(rng)
	username := strings.ToLower(GenerateAgentIDFromChineseName(rng, fullName))
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.Operator{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        fmt.Sprintf("%s@%s", username, emailDomainName),
		Role:         role,
		IsActive:     true,
	}, nil
}
