// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package kb 判断类型标识是否属于受支持的知识库命名空间。

# 概述

不属于白名单命名空间的类型被视为无层级信息的原子叶子：比较时只可能
得到 Exact 或 Unrelated 关系。

# 核心接口与类型

  - Classifier          — IsKnown(typeID) 判定接口
  - WhitelistClassifier — 基于 URI 前缀白名单的实现
  - ClassifierFunc      — 函数适配器；AllKnown 视所有类型为已知
*/
package kb
