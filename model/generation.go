package model

import (
	"github.com/brandlens/photogen/common/helper"
)

// Generation is one successfully produced image, recorded for queue-relayed
// calls so the scheduler can fetch results later.
type Generation struct {
	Id          int    `json:"id"`
	UserId      int    `json:"user_id" gorm:"index"`
	Prompt      string `json:"prompt" gorm:"type:text"`
	ImageUrl    string `json:"image_url" gorm:"type:varchar(1024)"`
	AspectRatio string `json:"aspect_ratio" gorm:"type:varchar(8)"`
	Quality     string `json:"quality" gorm:"type:varchar(16)"`
	ProductId   string `json:"product_id" gorm:"type:varchar(64);index"`
	ModelRefId  string `json:"model_ref_id" gorm:"type:varchar(64)"`
	SceneId     string `json:"scene_id" gorm:"type:varchar(64)"`
	CreatedTime int64  `json:"created_time" gorm:"bigint"`
}

func (g *Generation) Insert() error {
	g.CreatedTime = helper.GetTimestamp()
	return DB.Create(g).Error
}

func GetUserGenerations(userId int, startIdx int, num int) ([]*Generation, error) {
	var generations []*Generation
	err := DB.Where("user_id = ?", userId).Order("id desc").Limit(num).Offset(startIdx).Find(&generations).Error
	return generations, err
}
